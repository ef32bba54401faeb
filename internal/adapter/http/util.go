package adapthttp

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"market/internal/app"
)

const (
	sessionCookieName = "session"
	flashCookieName   = "flash"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// render executes into a buffer first so a template failure becomes a clean
// 500 instead of a committed partial page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(app.SessionDuration.Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// flashRedirect sets a one-shot notice cookie and redirects, the moral
// equivalent of Flask's flash+redirect.
func (s *Server) flashRedirect(w http.ResponseWriter, r *http.Request, target, notice string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(notice),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// popFlash returns the pending notice, clearing it so it renders once.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	notice, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return notice
}
