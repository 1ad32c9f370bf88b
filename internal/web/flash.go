package web

import (
	"net/http"
	"net/url"
)

// Flash messages survive exactly one redirect: mutating handlers set them,
// the next page render pops them.

const (
	flashCookie      = "flash"
	flashErrorCookie = "flash_error"
)

func setFlash(w http.ResponseWriter, msg string) {
	setFlashCookie(w, flashCookie, msg)
}

func setFlashError(w http.ResponseWriter, msg string) {
	setFlashCookie(w, flashErrorCookie, msg)
}

func setFlashCookie(w http.ResponseWriter, name, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// popFlash returns the pending success and error messages and clears them.
func popFlash(w http.ResponseWriter, r *http.Request) (success, errMsg string) {
	for _, name := range []string{flashCookie, flashErrorCookie} {
		cookie, err := r.Cookie(name)
		if err != nil || cookie.Value == "" {
			continue
		}
		msg, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			msg = ""
		}
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		if name == flashCookie {
			success = msg
		} else {
			errMsg = msg
		}
	}
	return success, errMsg
}
