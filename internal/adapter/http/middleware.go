package adapthttp

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"market/internal/domain"
)

type contextKey string

const accountContextKey contextKey = "account"

// requireAuth resolves the acting account from the session cookie and puts
// it in the request context. Requests without a valid session are redirected
// to the login page; the wrapped handler never runs.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		acct, err := s.auth.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFrom returns the authenticated account placed in the context by
// requireAuth.
func accountFrom(r *http.Request) *domain.Account {
	acct, _ := r.Context().Value(accountContextKey).(*domain.Account)
	return acct
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Hijack delegates to the wrapped writer so connection upgrades (the chat
// socket) still work behind the logging wrapper.
func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d", r.Method, r.URL.Path, rec.status)
	})
}
