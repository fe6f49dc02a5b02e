package auth

import (
	"context"

	"github.com/PortcullisApp/Portcullis-Backend/internal/config"
	"github.com/PortcullisApp/Portcullis-Backend/internal/utils"
)

// Manager wires the auth handlers and gates to their stores. Gates are
// stateless: each is a pure function of (request, store) with no shared
// mutable state between requests.
type Manager struct {
	users    UserStore
	sessions SessionStore
	cfg      config.Config
}

func NewManager(users UserStore, sessions SessionStore, cfg config.Config) *Manager {
	return &Manager{users: users, sessions: sessions, cfg: cfg}
}

// storeCtx bounds a store or hashing call so a hung backend cannot hang the
// request indefinitely.
func (m *Manager) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.cfg.StoreTimeout)
}

// FindSessionByID implements middleware.SessionFetcher.
func (m *Manager) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	session, err := m.sessions.FindByID(ctx, id)
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
