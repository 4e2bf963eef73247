package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/handlers"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/infra/integration/hubspot"
	"github.com/xavierca1/leadflow/internal/infra/integration/slack"
	"github.com/xavierca1/leadflow/internal/infra/mail"
	"github.com/xavierca1/leadflow/internal/infra/queue"
	"github.com/xavierca1/leadflow/internal/infra/research"
	"github.com/xavierca1/leadflow/internal/infra/store"
	"github.com/xavierca1/leadflow/internal/report"
	"github.com/xavierca1/leadflow/internal/scheduler"
	"github.com/xavierca1/leadflow/internal/scoring"
	"github.com/xavierca1/leadflow/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Approval store (file snapshot by default, Postgres when a
	// DATABASE_URL is set)
	var (
		approvalRepo entity.ApprovalRepositoryInterface
		db           *sql.DB
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		pgStore := store.NewPostgresApprovalStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("❌ Failed to prepare approvals table: %v", err)
		}
		approvalRepo = pgStore
		log.Println("🗄️ Using Postgres approval store")
	} else {
		path := envOr("APPROVAL_STORE_PATH", "data/approvals.json")
		fileStore, err := store.NewFileApprovalStore(path)
		if err != nil {
			log.Fatalf("❌ Failed to open approval snapshot: %v", err)
		}
		approvalRepo = fileStore
		log.Printf("🗄️ Using file approval store at %s", path)
	}

	// 2. RabbitMQ (decision follow-up queue)
	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 3. Gateways and adapters
	crmGateway := hubspot.NewClient()
	notifier := slack.NewClient()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)
	scorer := scoring.NewScorer()

	// 4. Use cases
	decideUC := usecase.NewDecideApprovalUseCase(approvalRepo, crmGateway, notifier, scorer)
	registerUC := usecase.NewRegisterApprovalUseCase(approvalRepo, notifier)
	pipelineUC := usecase.NewRunPipelineUseCase(
		research.NewSimulator(), scorer, registerUC, mailSender, notifier,
		intEnvOr("PIPELINE_BATCH_SIZE", 5),
	)
	cleanupUC := usecase.NewCleanupApprovalsUseCase(approvalRepo, decideUC)

	// 5. Decision worker (consumes the queue, applies decisions)
	worker := queue.NewWorker(rabbitMQ.Ch, decideUC)
	go worker.Start(queue.QueueName)

	// 6. Scheduled automations
	go scheduler.Every(ctx, durationEnvOr("PIPELINE_INTERVAL", 6*time.Hour), "pipeline", func(ctx context.Context) error {
		_, err := pipelineUC.Execute(ctx)
		return err
	})
	go scheduler.Every(ctx, time.Hour, "cleanup", cleanupUC.Execute)
	go scheduler.Every(ctx, 7*24*time.Hour, "weekly-report", func(ctx context.Context) error {
		approvals, err := approvalRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		md := report.Build(approvals, time.Now())
		if metrics, err := crmGateway.GetLeadMetrics(ctx); err == nil {
			md += fmt.Sprintf("\n## CRM totals\n\n- Deals: %d (%d won)\n- Total value: $%.2f\n",
				metrics.TotalDeals, metrics.WonDeals, float64(metrics.TotalValueCents)/100)
		}
		if to := os.Getenv("REPORT_EMAIL"); to != "" {
			if err := mailSender.SendReport(to, "Weekly lead pipeline report", md); err != nil {
				log.Printf("⚠️ Report email failed: %v", err)
			}
		}
		return notifier.SendMessage(ctx, md)
	})

	// 7. Handlers
	webhookHandler := handlers.NewWebhookHandler(notifier)
	interactivityHandler := handlers.NewInteractivityHandler(producer, decideUC)
	detailsHandler := handlers.NewLeadDetailsHandler(approvalRepo)
	detailsHandler.Tracker = crmGateway
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)
	limiter := handlers.NewRateLimiter(30, time.Minute)

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/webhook", limiter.Limit(webhookHandler.Handle))
	r.Post("/interactivity", limiter.Limit(interactivityHandler.Handle))
	r.Get("/lead-details/{approvalId}", detailsHandler.HandleDetails)
	r.Get("/view/{id}", detailsHandler.HandleView)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 LeadFlow server running on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnvOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationEnvOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
