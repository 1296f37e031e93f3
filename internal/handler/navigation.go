package handler

import (
	"encoding/base64"
	"net/http"
)

// flashCookieName holds a one-shot notification until the next page render.
const flashCookieName = "flash"

// httpNavigator turns GoTo into an HTTP redirect: HX-Redirect for htmx
// requests, 303 See Other otherwise. Only the first call has an effect.
type httpNavigator struct {
	w      http.ResponseWriter
	r      *http.Request
	target string
}

func newNavigator(w http.ResponseWriter, r *http.Request) *httpNavigator {
	return &httpNavigator{w: w, r: r}
}

// GoTo writes the redirect immediately, so anything that must reach the
// client (cookies) has to be set before it is called.
func (n *httpNavigator) GoTo(path string) {
	if n.target != "" {
		return
	}
	n.target = path

	if isHTMX(n.r) {
		n.w.Header().Set("HX-Redirect", path)
		n.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}

// Navigated reports whether a redirect has been written.
func (n *httpNavigator) Navigated() bool {
	return n.target != ""
}

// flashNotifier stores the message in a short-lived cookie that the listing
// page consumes.
type flashNotifier struct {
	w        http.ResponseWriter
	isSecure bool
}

func (f flashNotifier) Notify(message string) {
	http.SetCookie(f.w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   f.isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// consumeFlash returns the pending notification, if any, and expires the cookie.
func consumeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(message)
}
