package lib

import (
	"net/http"
	"time"
)

const AccessCookieName = "comandas_access"

// SetAccessCookie stores the access token for browser clients of the point of sale.
func SetAccessCookie(val string, expiry time.Time, secure bool, w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    val,
		Expires:  expiry,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		HttpOnly: true,
	})
}

// ClearAccessCookie removes the access cookie from the browser
func ClearAccessCookie(secure bool, w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		HttpOnly: true,
	})
}
