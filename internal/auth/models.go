package auth

import "time"

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string `json:"-"`
}

// Session is the server-side record a session_id cookie points at. Username
// is a snapshot taken at login; it is not refreshed if the user row changes.
type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	Username  string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (User) TableName() string    { return "app_auth.users" }
