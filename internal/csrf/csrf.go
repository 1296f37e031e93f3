// Package csrf protects the booking forms with the double-submit cookie
// pattern: a random token lives in a cookie and must be echoed back in the
// form body (or the X-CSRF-Token header for htmx requests) on every unsafe
// request.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the hidden input carrying the token.
	FormFieldName = "csrf_token"

	// HeaderName is checked before the form field.
	HeaderName = "X-CSRF-Token"

	tokenBytes   = 32
	cookieMaxAge = 2 * 60 * 60
)

// NewToken returns 32 random bytes, base64 URL-encoded.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Valid compares the cookie token with the submitted one in constant time.
func Valid(cookieToken, submitted string) bool {
	if cookieToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) == 1
}

// Token returns the request's CSRF token, issuing a new cookie when the
// request has none. Call it from handlers that render forms.
func Token(w http.ResponseWriter, r *http.Request, isSecure bool) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	token, err := NewToken()
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic("csrf: failed to generate token: " + err.Error())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return token
}

// Protect rejects unsafe requests whose submitted token does not match the
// cookie. Rejected requests are passed to onFailure.
func Protect(onFailure http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CookieName)
			if err != nil {
				onFailure.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(HeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(FormFieldName)
			}

			if !Valid(cookie.Value, submitted) {
				onFailure.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
