package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/wenotes/internal/common"
)

// refreshCookiePath scopes the refresh cookie to the auth endpoints so the
// opaque token never rides along on note or profile requests.
const refreshCookiePath = "/api/v1/auth"

// setRefreshCookie installs the rotated refresh token. The token travels only
// here; it never appears in a response body.
func setRefreshCookie(w http.ResponseWriter, token string, validity time.Duration, production bool) {
	c := &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}

// clearRefreshCookie retires the cookie on logout and on failed refresh.
func clearRefreshCookie(w http.ResponseWriter, production bool) {
	c := &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}
