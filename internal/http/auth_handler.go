package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
)

// AuthHandler owns the cookie-writing endpoints and the presence
// checks built on them. Nothing else in the service sets or clears
// the auth cookies.
type AuthHandler struct {
	opts     session.CookieOptions
	resolver *session.Resolver
	client   *session.Client
	log      *slog.Logger
}

func NewAuthHandler(opts session.CookieOptions, resolver *session.Resolver, client *session.Client, log *slog.Logger) *AuthHandler {
	return &AuthHandler{opts: opts, resolver: resolver, client: client, log: log}
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
}

// SetTokens validates the token payload and issues the three auth
// cookies. Any missing field is a 400 and no cookie is written.
func (h *AuthHandler) SetTokens(w http.ResponseWriter, r *http.Request) {
	var t session.Tokens
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if t.AccessToken == "" || t.RefreshToken == "" || t.UserID == "" {
		respondError(w, http.StatusBadRequest, "missing_field", "accessToken, refreshToken and userId are required")
		return
	}

	session.SetAuthCookies(w, t, h.opts)
	respondJSON(w, http.StatusOK, map[string]string{"message": "tokens set"})
}

// ClearTokens expires the three auth cookies immediately.
func (h *AuthHandler) ClearTokens(w http.ResponseWriter, r *http.Request) {
	session.ClearAuthCookies(w, h.opts)
	respondJSON(w, http.StatusOK, map[string]string{"message": "tokens cleared"})
}

// Session answers the presence check: authenticated iff both an
// access token and a user id resolve. No validity or expiry check.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cookies := r.Cookies()

	resp := SessionResponse{Authenticated: h.resolver.IsAuthenticated(ctx, cookies)}
	if resp.Authenticated {
		resp.UserID = h.resolver.UserID(ctx)
		if resp.UserID == "" {
			resp.UserID = cookieValue(r, session.UserIDCookie)
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// Logout clears the client-side auth artifacts and cookies, then
// fires the upstream token clear without waiting on it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.resolver.ClearAuthData(r.Context())
	h.client.ClearRemote(r.Context())
	session.ClearAuthCookies(w, h.opts)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
