package users

import (
	"context"
	"net/http"
	"time"

	"github.com/PortcullisApp/Portcullis-Backend/internal/auth"
	"github.com/PortcullisApp/Portcullis-Backend/internal/httputil"
)

// Handler serves the user directory. Listing goes out as [{id, username}];
// the hash field never serializes.
type Handler struct {
	Store   auth.UserStore
	Timeout time.Duration
}

func (h Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	users, err := h.Store.ListAll(ctx)
	if err != nil {
		httputil.Internal(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}
