package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Resolver answers authentication-presence questions. It never
// validates token signatures or expiry; presence is the whole check,
// and every failure degrades to unauthenticated.
type Resolver struct {
	session Storage // session-scoped values, first choice for the user id
	durable Storage // durable fallback copies
	log     *slog.Logger
}

func NewResolver(session, durable Storage, log *slog.Logger) *Resolver {
	return &Resolver{session: session, durable: durable, log: log}
}

// AccessToken resolves the access token: the cookie bag wins when it
// carries one, else the durable fallback copy, else empty.
func (r *Resolver) AccessToken(ctx context.Context, cookies []*http.Cookie) string {
	for _, c := range cookies {
		if c.Name == AccessTokenCookie && c.Value != "" {
			return c.Value
		}
	}

	tok, err := r.durable.Get(ctx, StorageKeyAccessToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("access token lookup failed", slog.Any("err", err))
		}
		return ""
	}
	return tok
}

// UserID resolves the user id: session storage first, then the `id`
// field of the durable user-data blob. Parse failures are logged and
// yield empty.
func (r *Resolver) UserID(ctx context.Context) string {
	if id, err := r.session.Get(ctx, StorageKeyUserID); err == nil && id != "" {
		return id
	}

	raw, err := r.durable.Get(ctx, StorageKeyUserData)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("user data lookup failed", slog.Any("err", err))
		}
		return ""
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		r.log.Error("user data parse failed", slog.Any("err", err))
		return ""
	}
	return user.ID
}

// IsAuthenticated reports whether both an access token and a user id
// resolve. Presence only.
func (r *Resolver) IsAuthenticated(ctx context.Context, cookies []*http.Cookie) bool {
	if r.AccessToken(ctx, cookies) == "" {
		return false
	}
	userID := r.UserID(ctx)
	if userID == "" {
		for _, c := range cookies {
			if c.Name == UserIDCookie && c.Value != "" {
				userID = c.Value
				break
			}
		}
	}
	return userID != ""
}

// ClearAuthData best-effort clears the client-side auth artifacts from
// both storages. The caller follows up with the fire-and-forget call
// to the token-clear endpoint.
func (r *Resolver) ClearAuthData(ctx context.Context) {
	for _, key := range []string{StorageKeyAccessToken, StorageKeyUserID, StorageKeyUserData} {
		if err := r.session.Delete(ctx, key); err != nil {
			r.log.Error("session storage clear failed", slog.String("key", key), slog.Any("err", err))
		}
		if err := r.durable.Delete(ctx, key); err != nil {
			r.log.Error("durable storage clear failed", slog.String("key", key), slog.Any("err", err))
		}
	}
}
