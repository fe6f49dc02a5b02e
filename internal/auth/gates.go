package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/PortcullisApp/Portcullis-Backend/internal/httputil"
	"github.com/PortcullisApp/Portcullis-Backend/internal/utils"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// DecodeCredentials parses the JSON body once and stashes the result in the
// request context for the gates and handler downstream. An empty body yields
// zero-value credentials so the field gates fire the same way they would for
// missing fields. Usernames are NFC-normalized here so every later lookup and
// insert sees one canonical encoding.
func (m *Manager) DecodeCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds utils.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil && err != io.EOF {
			httputil.Message(w, http.StatusBadRequest, "invalid request body")
			return
		}
		creds.Username = norm.NFC.String(creds.Username)

		ctx := context.WithValue(r.Context(), utils.ContextCredentialsKey, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CheckUsernameFree refuses registration when the username is already held.
// A store failure is never treated as "free".
func (m *Manager) CheckUsernameFree(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, ok := utils.GetCredentialsFromContext(r.Context())
		if !ok {
			httputil.Internal(w, errors.New("credentials missing from context"))
			return
		}

		ctx, cancel := m.storeCtx(r.Context())
		defer cancel()

		_, err := m.users.FindByUsername(ctx, creds.Username)
		switch {
		case err == nil:
			httputil.Message(w, http.StatusUnprocessableEntity, "username taken")
		case errors.Is(err, gorm.ErrRecordNotFound):
			next.ServeHTTP(w, r)
		default:
			httputil.Internal(w, err)
		}
	})
}

// CheckUsernameExists pre-validates login attempts. An unknown username gets
// the same status and wording as a bad password so callers can't tell which
// factor was wrong. The not-found branch is an explicit single-record check.
func (m *Manager) CheckUsernameExists(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, ok := utils.GetCredentialsFromContext(r.Context())
		if !ok {
			httputil.Internal(w, errors.New("credentials missing from context"))
			return
		}

		ctx, cancel := m.storeCtx(r.Context())
		defer cancel()

		_, err := m.users.FindByUsername(ctx, creds.Username)
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, gorm.ErrRecordNotFound):
			httputil.Message(w, http.StatusUnauthorized, "invalid credentials")
		default:
			httputil.Internal(w, err)
		}
	})
}

// CheckPasswordLength requires a password strictly longer than 3 characters.
func (m *Manager) CheckPasswordLength(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, ok := utils.GetCredentialsFromContext(r.Context())
		if !ok {
			httputil.Internal(w, errors.New("credentials missing from context"))
			return
		}

		if len(creds.Password) <= 3 {
			httputil.Message(w, http.StatusUnprocessableEntity, "password must be longer than 3 chars")
			return
		}
		next.ServeHTTP(w, r)
	})
}
