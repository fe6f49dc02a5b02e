package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/PortcullisApp/Portcullis-Backend/internal/httputil"
	"github.com/PortcullisApp/Portcullis-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterHandler creates a new user. The gates already vetted the request;
// uniqueness is re-checked at write time and the insert's unique-violation
// error is the authoritative rejection when two registrations race.
func (m *Manager) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := utils.GetCredentialsFromContext(r.Context())
	if !ok {
		httputil.Internal(w, errors.New("credentials missing from context"))
		return
	}

	ctx, cancel := m.storeCtx(r.Context())
	defer cancel()

	_, err := m.users.FindByUsername(ctx, creds.Username)
	if err == nil {
		httputil.Message(w, http.StatusUnprocessableEntity, "username taken")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Internal(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), m.cfg.BcryptCost)
	if err != nil {
		httputil.Internal(w, err)
		return
	}

	user := &User{Username: creds.Username, HashedPassword: string(hashed)}
	if err := m.users.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			httputil.Message(w, http.StatusUnprocessableEntity, "username taken")
			return
		}
		httputil.Internal(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, user)
}

// LoginHandler verifies credentials and establishes a session. When the user
// is missing, the password is still verified against the empty string so the
// two failure paths cost the same; both answer with the identical 401 body.
func (m *Manager) LoginHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := utils.GetCredentialsFromContext(r.Context())
	if !ok {
		httputil.Internal(w, errors.New("credentials missing from context"))
		return
	}

	ctx, cancel := m.storeCtx(r.Context())
	defer cancel()

	user, err := m.users.FindByUsername(ctx, creds.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Internal(w, err)
		return
	}

	hash := ""
	if err == nil {
		hash = user.HashedPassword
	}
	verifyErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password))
	if err != nil || verifyErr != nil {
		httputil.Message(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session := &Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(m.cfg.SessionTTL),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		httputil.Internal(w, err)
		return
	}

	http.SetCookie(w, m.sessionCookie(session.SessionID))
	httputil.Message(w, http.StatusOK, "welcome "+user.Username)
}

// LogoutHandler destroys the caller's session. It is idempotent: with no
// cookie, or a cookie naming a session that's already gone, it still answers
// 200 "no session".
func (m *Manager) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		httputil.Message(w, http.StatusOK, "no session")
		return
	}

	ctx, cancel := m.storeCtx(r.Context())
	defer cancel()

	_, err = m.sessions.FindByID(ctx, cookie.Value)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.SetCookie(w, m.expiredSessionCookie())
		httputil.Message(w, http.StatusOK, "no session")
		return
	}
	if err != nil {
		httputil.Internal(w, err)
		return
	}

	if err := m.sessions.Delete(ctx, cookie.Value); err != nil {
		httputil.Internal(w, err)
		return
	}

	http.SetCookie(w, m.expiredSessionCookie())
	httputil.Message(w, http.StatusOK, "logged out")
}

func (m *Manager) sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.cfg.SecureCookies,
	}
}

func (m *Manager) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.cfg.SecureCookies,
	}
}
