package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"market/internal/adapter/filelog"
	adapthttp "market/internal/adapter/http"
	"market/internal/adapter/memory"
	"market/internal/adapter/postgres"
	"market/internal/adapter/sqlite"
	"market/internal/app"
	"market/internal/config"
	"market/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	accounts, listings, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer func() { _ = closer.Close() }()

	sink, err := filelog.Open(cfg.ReportFile)
	if err != nil {
		log.Fatalf("report sink: %v", err)
	}
	defer func() { _ = sink.Close() }()

	// Sessions live in memory only; they die with the process.
	sessionRepo := memory.NewSessionRepo()
	go purgeSessions(sessionRepo)

	authSvc := app.NewAuthService(accounts, sessionRepo, app.SchemeByName(cfg.CredentialScheme))
	accountSvc := app.NewAccountService(accounts)
	listingSvc := app.NewListingService(listings, accounts)
	chatSvc := app.NewChatService(accounts)
	reportSvc := app.NewReportService(sink)

	oidcRt, err := adapthttp.NewOIDC(context.Background(), cfg.OIDC)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	srv, err := adapthttp.New(authSvc, accountSvc, listingSvc, chatSvc, reportSvc, cfg.WebDir, cfg.SecureCookie, oidcRt)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore selects PostgreSQL when DATABASE_URL is set and the local
// SQLite file otherwise.
func openStore(cfg *config.Config) (domain.AccountRepository, domain.ListingRepository, io.Closer, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewAccountRepo(db), postgres.NewListingRepo(db), db, nil
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	return sqlite.NewAccountRepo(db), sqlite.NewListingRepo(db), db, nil
}

func purgeSessions(sessions domain.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := sessions.DeleteExpired(context.Background()); err != nil {
			log.Printf("purge sessions: %v", err)
		}
	}
}
