package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
)

func guardedOK(t *testing.T) http.Handler {
	t.Helper()
	return RouteGuard(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func authCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: session.AccessTokenCookie, Value: "tok"},
		{Name: session.UserIDCookie, Value: "u1"},
	}
}

func doGuarded(t *testing.T, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	guardedOK(t).ServeHTTP(rec, req)
	return rec
}

func TestRouteGuard_ProtectedWithoutTokens(t *testing.T) {
	rec := doGuarded(t, "/account", nil)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login?redirect=%2Faccount", rec.Header().Get("Location"))
}

func TestRouteGuard_AllProtectedPrefixes(t *testing.T) {
	for _, p := range []string{"/account", "/dashboard", "/profile", "/settings", "/orders/123"} {
		rec := doGuarded(t, p, nil)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code, "path %s", p)
	}
}

func TestRouteGuard_ProtectedWithTokens(t *testing.T) {
	rec := doGuarded(t, "/account", authCookies())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuard_PartialCookiesStayUnauthenticated(t *testing.T) {
	tokenOnly := []*http.Cookie{{Name: session.AccessTokenCookie, Value: "tok"}}
	rec := doGuarded(t, "/account", tokenOnly)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	emptyValue := []*http.Cookie{
		{Name: session.AccessTokenCookie, Value: "tok"},
		{Name: session.UserIDCookie, Value: ""},
	}
	rec = doGuarded(t, "/account", emptyValue)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestRouteGuard_AuthOnlyWithTokens(t *testing.T) {
	rec := doGuarded(t, "/login", authCookies())

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
}

func TestRouteGuard_AuthOnlyHonoursRedirectParam(t *testing.T) {
	rec := doGuarded(t, "/login?redirect=%2Forders%2F42", authCookies())

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/orders/42", rec.Header().Get("Location"))
}

func TestRouteGuard_RejectsNonRelativeRedirect(t *testing.T) {
	rec := doGuarded(t, "/login?redirect=https%3A%2F%2Fevil.example", authCookies())

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
}

func TestRouteGuard_AuthOnlyWithoutTokensPasses(t *testing.T) {
	rec := doGuarded(t, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuard_PublicPathPasses(t *testing.T) {
	rec := doGuarded(t, "/shop/shirts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuard_SkipsAPIAndAssets(t *testing.T) {
	for _, p := range []string{
		"/api/cart",
		"/static/site.css",
		"/favicon.ico",
		"/banners/summer.png",
		"/banners/summer.JPG",
	} {
		rec := doGuarded(t, p, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", p)
	}
}
