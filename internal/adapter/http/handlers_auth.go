package adapthttp

import (
	"errors"
	"net/http"

	"market/internal/app"
	"market/internal/domain"
)

type authViewModel struct {
	Notice     string
	SSOEnabled bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if _, err := s.auth.ValidateSession(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}
	s.render(w, "index.html", authViewModel{Notice: s.popFlash(w, r), SSOEnabled: s.oidc.Enabled})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", authViewModel{Notice: s.popFlash(w, r), SSOEnabled: s.oidc.Enabled})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, "/login", "Invalid form submission.")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		s.flashRedirect(w, r, "/login", "Username or password is incorrect.")
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", authViewModel{Notice: s.popFlash(w, r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, "/register", "Invalid form submission.")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := s.auth.Register(r.Context(), username, password)
	if errors.Is(err, domain.ErrUsernameTaken) {
		s.flashRedirect(w, r, "/register", "That username is already taken.")
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		_ = s.auth.Logout(r.Context(), cookie.Value)
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
