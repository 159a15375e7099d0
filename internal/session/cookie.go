package session

import (
	"net/http"
	"time"
)

// Cookie names shared with the storefront pages. The server is the
// sole writer; all three are httpOnly.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	UserIDCookie       = "userId"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	UserIDTTL       = 7 * 24 * time.Hour
)

// Tokens is the payload of the set-tokens endpoint.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

// CookieOptions defines how auth cookies are issued.
type CookieOptions struct {
	Secure bool
	Domain string
}

// SetAuthCookies issues the three auth cookies.
func SetAuthCookies(w http.ResponseWriter, t Tokens, opts CookieOptions) {
	setCookie(w, AccessTokenCookie, t.AccessToken, AccessTokenTTL, opts)
	setCookie(w, RefreshTokenCookie, t.RefreshToken, RefreshTokenTTL, opts)
	setCookie(w, UserIDCookie, t.UserID, UserIDTTL, opts)
}

// ClearAuthCookies overwrites the three auth cookies with empty values
// expiring immediately.
func ClearAuthCookies(w http.ResponseWriter, opts CookieOptions) {
	clearCookie(w, AccessTokenCookie, opts)
	clearCookie(w, RefreshTokenCookie, opts)
	clearCookie(w, UserIDCookie, opts)
}

func setCookie(w http.ResponseWriter, name, value string, ttl time.Duration, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
