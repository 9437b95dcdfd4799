package contacts

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	sessionName = "contacts"
	clientKey   = "client"
)

// clientID returns the browser's client id, issuing one when create is set.
// Must run before any SSE output since it may write a cookie.
func (h *Handlers) clientID(w http.ResponseWriter, r *http.Request, create bool) (string, error) {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil && session == nil {
		return "", err
	}

	if id, ok := session.Values[clientKey].(string); ok && id != "" {
		return id, nil
	}
	if !create {
		return "", nil
	}

	id := uuid.NewString()
	session.Values[clientKey] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}
