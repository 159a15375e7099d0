package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
)

// Path prefixes gated by the route guard. Prefix match, list order,
// first match wins; the two lists are disjoint by construction.
var (
	protectedPrefixes = []string{"/account", "/dashboard", "/profile", "/settings", "/orders"}
	authOnlyPrefixes  = []string{"/login", "/signup"}
)

var skippedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
}

// RouteGuard gates navigation before any page logic runs. It is a
// coarse presence filter: both auth cookies present and non-empty
// counts as authenticated, with no signature or expiry check. Finer
// verification is deferred to in-page logic.
func RouteGuard(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guardSkips(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			hasTokens := cookieValue(r, session.AccessTokenCookie) != "" &&
				cookieValue(r, session.UserIDCookie) != ""

			if matchesPrefix(r.URL.Path, protectedPrefixes) && !hasTokens {
				target := "/login?redirect=" + url.QueryEscape(r.URL.Path)
				log.Debug("route guard redirect", slog.String("path", r.URL.Path), slog.String("to", target))
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
				return
			}

			if matchesPrefix(r.URL.Path, authOnlyPrefixes) && hasTokens {
				target := "/account"
				if q := r.URL.Query().Get("redirect"); strings.HasPrefix(q, "/") {
					target = q
				}
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// guardSkips excludes API routes, static assets, the favicon and
// image files from guarding.
func guardSkips(p string) bool {
	if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/static/") {
		return true
	}
	if p == "/favicon.ico" {
		return true
	}
	return skippedExtensions[strings.ToLower(path.Ext(p))]
}

func matchesPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
