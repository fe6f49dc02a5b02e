package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/PortcullisApp/Portcullis-Backend/internal/auth"
	"github.com/PortcullisApp/Portcullis-Backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockUserStore implements auth.UserStore in memory. The error fields force
// failure paths that a real store only produces under duress.
type mockUserStore struct {
	mu        sync.Mutex
	users     map[string]*auth.User
	nextID    uint
	findErr   error
	insertErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*auth.User)}
}

func (s *mockUserStore) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *mockUserStore) ListAll(ctx context.Context) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []auth.User{}
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}

func (s *mockUserStore) Insert(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, exists := s.users[user.Username]; exists {
		return auth.ErrUsernameTaken
	}
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.Username] = &cp
	return nil
}

// addUser seeds a user with a bcrypt-hashed password, bypassing the API.
func (s *mockUserStore) addUser(username, password string) *auth.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &auth.User{Username: username, HashedPassword: string(hashed)}
	if err := s.Insert(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// mockSessionStore implements auth.SessionStore in memory.
type mockSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*auth.Session
	createErr error
	deleteErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*auth.Session)}
}

func (s *mockSessionStore) Create(ctx context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for id, existing := range s.sessions {
		if existing.UserID == session.UserID {
			delete(s.sessions, id)
		}
	}
	cp := *session
	s.sessions[session.SessionID] = &cp
	return nil
}

func (s *mockSessionStore) FindByID(ctx context.Context, id string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *mockSessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, id)
	return nil
}

func (s *mockSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		DatabaseURL:  "postgres://unused",
		BcryptCost:   bcrypt.MinCost,
		SessionTTL:   time.Hour,
		StoreTimeout: 5 * time.Second,
	}
}

func newTestManager(users *mockUserStore, sessions *mockSessionStore) *auth.Manager {
	return auth.NewManager(users, sessions, testConfig())
}
