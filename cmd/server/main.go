package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	airunrepo "callmonitor/internal/airun/repository"
	"callmonitor/internal/audit"
	auditrepo "callmonitor/internal/audit/repository"
	callrepo "callmonitor/internal/call/repository"
	"callmonitor/internal/call/service"
	"callmonitor/internal/config"
	"callmonitor/internal/db"
	membershiprepo "callmonitor/internal/membership/repository"
	orgrepo "callmonitor/internal/organization/repository"
	"callmonitor/internal/provider"
	recordingrepo "callmonitor/internal/recording/repository"
	"callmonitor/internal/security"
	"callmonitor/internal/server"
	systemrepo "callmonitor/internal/system/repository"
	"callmonitor/internal/telemetry"
	telemetryotel "callmonitor/internal/telemetry/otel"
	"callmonitor/internal/telemetry/producer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, "callmonitor-server", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	// Telemetry events go to Kafka when brokers are configured; otherwise they
	// ride the OTel log pipeline (no-op when OTLP is also unset).
	var emitter telemetry.EventEmitter
	kafkaProducer, err := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic)
	if err != nil {
		log.Fatalf("telemetry: kafka producer: %v", err)
	}
	if kafkaProducer != nil {
		emitter = kafkaProducer
		defer kafkaProducer.Close()
	} else {
		emitter = telemetryotel.NewEventEmitter(providers.LoggerProvider)
	}

	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("security: JWT_PUBLIC_KEY: %v", err)
	}
	// The server only validates tokens; cmd/token issues them.
	tokens := security.NewTokenProvider(nil, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	hasher := security.NewSecretHasher(cfg.BcryptCost)
	webhookSecretHash := ""
	if cfg.ProviderWebhookSecret != "" {
		webhookSecretHash, err = hasher.Hash([]byte(cfg.ProviderWebhookSecret))
		if err != nil {
			log.Fatalf("security: webhook secret: %v", err)
		}
	}

	var (
		orgs       service.OrgRepo
		members    service.MembershipRepo
		systems    service.SystemRepo
		calls      service.CallRepo
		airuns     service.AIRunRepo
		recordings service.RecordingRepo
		audits     auditrepo.Repository
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer conn.Close()
		orgs = orgrepo.NewPostgresRepository(conn)
		members = membershiprepo.NewPostgresRepository(conn)
		systems = systemrepo.NewPostgresRepository(conn)
		calls = callrepo.NewPostgresRepository(conn)
		airuns = airunrepo.NewPostgresRepository(conn)
		recordings = recordingrepo.NewPostgresRepository(conn)
		audits = auditrepo.NewPostgresRepository(conn)
	} else {
		log.Println("DATABASE_URL not set; using in-memory stores (dev mode)")
		orgs = orgrepo.NewMemoryRepository()
		members = membershiprepo.NewMemoryRepository()
		systems = systemrepo.NewMemoryRepository()
		calls = callrepo.NewMemoryRepository()
		airuns = airunrepo.NewMemoryRepository()
		recordings = recordingrepo.NewMemoryRepository()
		audits = auditrepo.NewMemoryRepository()
	}

	var dialer provider.CallProvider
	if cfg.ProviderBaseURL != "" {
		dialer = provider.NewSignalWireClient(cfg.ProviderAPIKey, cfg.ProviderBaseURL)
	} else {
		log.Println("PROVIDER_BASE_URL not set; using simulated call provider")
		dialer = provider.Simulated{}
	}

	svc := service.New(orgs, members, systems, calls, airuns, recordings, audits, audit.NewRecorder(audits), dialer, cfg.TranscriptionModel)
	handler := server.NewHandler(svc, emitter, webhookSecretHash, hasher.Compare)
	router := server.NewRouter(handler, tokens)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// Give in-flight async telemetry emits time to complete before tearing
	// down the providers.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
