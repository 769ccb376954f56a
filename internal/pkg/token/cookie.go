package token

import (
	"net/http"
	"time"
)

// CookieName é o nome do cookie que transporta o token de sessão.
const CookieName = "token"

// SetSessionCookie grava o token como cookie HttpOnly.
// Em produção o cookie é Secure e SameSite=None (front-end em outro domínio); fora dela, SameSite=Strict.
func SetSessionCookie(w http.ResponseWriter, tokenString string, maxAge time.Duration, production bool) {
	cookie := sessionCookie(production)
	cookie.Value = tokenString
	cookie.MaxAge = int(maxAge.Seconds())
	cookie.Expires = time.Now().Add(maxAge)
	http.SetCookie(w, cookie)
}

// ClearSessionCookie remove o cookie no cliente (Max-Age=0) com os mesmos atributos da emissão.
func ClearSessionCookie(w http.ResponseWriter, production bool) {
	cookie := sessionCookie(production)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

// FromRequest extrai o token do cookie; string vazia quando ausente.
func FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sessionCookie(production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
