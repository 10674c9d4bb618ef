package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/otiai10/rolegate/internal/api"
	"github.com/otiai10/rolegate/internal/audit"
	"github.com/otiai10/rolegate/internal/auth"
	"github.com/otiai10/rolegate/internal/config"
	"github.com/otiai10/rolegate/internal/store"
	"github.com/otiai10/rolegate/internal/user"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (empty: environment variables only)")
	flag.Parse()

	// Load .env.localdev file if it exists (for local development)
	// Silently ignore if file doesn't exist (production uses real env vars)
	_ = godotenv.Load(".env.localdev")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Printf("Initializing Firestore client for project: %s, database: %s",
		cfg.Store.ProjectID, cfg.Store.Database)
	firestoreClient, err := store.NewFirestoreClient(ctx, store.FirestoreConfig{
		ProjectID:   cfg.Store.ProjectID,
		Database:    cfg.Store.Database,
		Credentials: cfg.Store.Credentials,
	})
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := user.NewFirestoreRepository(firestoreClient.Client(), cfg.Store.Collection)

	tenantInfo := ""
	if cfg.Auth.TenantID != "" {
		tenantInfo = ", tenant: " + cfg.Auth.TenantID
	}
	log.Printf("Initializing Firebase Auth for project: %s%s", cfg.Auth.ProjectID, tenantInfo)

	verifier, err := auth.NewFirebaseTokenVerifier(ctx, auth.FirebaseTokenVerifierConfig{
		ProjectID:       cfg.Auth.ProjectID,
		CredentialsPath: cfg.Auth.Credentials,
		TenantID:        cfg.Auth.TenantID,
	})
	if err != nil {
		log.Fatalf("Failed to create Firebase Auth verifier: %v", err)
	}

	auditLog := audit.NewLog(audit.DefaultCapacity)

	router := api.NewRouter(api.RouterConfig{
		UserRepo:      userRepo,
		TokenVerifier: verifier,
		AuditLog:      auditLog,
		AllowedRoles:  cfg.Gate.AllowedRoles,
	})

	server := api.NewServer(cfg.Server.Addr, router)

	go func() {
		log.Printf("Starting rolegate API server on %s (allowed roles: %v)",
			cfg.Server.Addr, cfg.Gate.AllowedRoles)
		if err := server.Start(); err != nil {
			log.Printf("API server error: %v", err)
			cancel()
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
