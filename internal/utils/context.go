package utils

import (
	"context"
	"time"
)

type contextKey string

const (
	ContextUserIDKey      contextKey = "userID"
	ContextUsernameKey    contextKey = "username"
	ContextCredentialsKey contextKey = "credentials"
)

// Credentials is the parsed login/register request body, decoded once by
// middleware and shared with every gate downstream.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionData is what the session middleware needs to admit a request.
type SessionData struct {
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ContextUsernameKey).(string)
	return username, ok
}

func GetCredentialsFromContext(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(ContextCredentialsKey).(Credentials)
	return creds, ok
}
