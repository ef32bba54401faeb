// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"market/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth     *app.AuthService
	accounts *app.AccountService
	listings *app.ListingService
	chat     *app.ChatService
	reports  *app.ReportService

	templates    *template.Template
	secureCookie bool
	oidc         *OIDCRuntime
}

// New creates a Server wired to the given application services. Templates
// are parsed from webDir/templates at startup.
func New(auth *app.AuthService, accounts *app.AccountService, listings *app.ListingService, chat *app.ChatService, reports *app.ReportService, webDir string, secureCookie bool, oidc *OIDCRuntime) (*Server, error) {
	tmpl, err := template.ParseGlob(filepath.Join(webDir, "templates", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if oidc == nil {
		oidc = &OIDCRuntime{}
	}
	return &Server{
		auth:         auth,
		accounts:     accounts,
		listings:     listings,
		chat:         chat,
		reports:      reports,
		templates:    tmpl,
		secureCookie: secureCookie,
		oidc:         oidc,
	}, nil
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /logout", s.handleLogout)

	mux.HandleFunc("GET /sso/login", s.handleSSOLogin)
	mux.HandleFunc("GET /sso/callback", s.handleSSOCallback)

	mux.Handle("GET /dashboard", s.requireAuth(s.handleDashboard))
	mux.Handle("GET /add_product", s.requireAuth(s.handleAddProductPage))
	mux.Handle("POST /add_product", s.requireAuth(s.handleAddProduct))
	mux.HandleFunc("GET /product/{id}", s.handleProduct)
	mux.Handle("GET /transfer", s.requireAuth(s.handleTransferPage))
	mux.Handle("POST /transfer", s.requireAuth(s.handleTransfer))
	mux.HandleFunc("GET /report", s.handleReportPage)
	mux.HandleFunc("POST /report", s.handleReport)

	mux.HandleFunc("GET /chat", s.handleChatPage)
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	return s.loggingMiddleware(mux)
}
