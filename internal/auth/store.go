package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/PortcullisApp/Portcullis-Backend/internal/db"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrUsernameTaken is returned by Insert when the users unique index rejects
// the row. The index, not the pre-insert gate, is the source of truth for
// uniqueness: two concurrent registrations can both pass the gate, and the
// loser of the insert race gets this error.
var ErrUsernameTaken = errors.New("username taken")

type UserStore interface {
	// FindByUsername returns gorm.ErrRecordNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, user *User) error
}

type SessionStore interface {
	// Create replaces any existing session for the same user.
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type GormUserStore struct{}

func (GormUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := db.DB.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (GormUserStore) ListAll(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := db.DB.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (GormUserStore) Insert(ctx context.Context, user *User) error {
	err := db.DB.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

// isUniqueViolation reports whether err is a duplicate-key rejection.
// Postgres signals these with SQLSTATE 23505; the message fallback covers
// drivers that don't surface a *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}

type GormSessionStore struct{}

func (GormSessionStore) Create(ctx context.Context, session *Session) error {
	return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", session.UserID).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (GormSessionStore) FindByID(ctx context.Context, id string) (*Session, error) {
	var session Session
	err := db.DB.WithContext(ctx).First(&session, "session_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (GormSessionStore) Delete(ctx context.Context, id string) error {
	return db.DB.WithContext(ctx).Where("session_id = ?", id).Delete(&Session{}).Error
}
