package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naveenbxyz/iclm/internal/audit"
	"github.com/naveenbxyz/iclm/internal/platform/config"
	"github.com/naveenbxyz/iclm/internal/platform/httpserver"
	"github.com/naveenbxyz/iclm/internal/platform/logger"
	"github.com/naveenbxyz/iclm/internal/platform/metrics"
	platformredis "github.com/naveenbxyz/iclm/internal/platform/redis"
	"github.com/naveenbxyz/iclm/internal/regulatory/checks"
	"github.com/naveenbxyz/iclm/internal/regulatory/classifier"
	reghandler "github.com/naveenbxyz/iclm/internal/regulatory/handler"
	"github.com/naveenbxyz/iclm/internal/regulatory/rules"
	"github.com/naveenbxyz/iclm/internal/regulatory/service"
	classificationstore "github.com/naveenbxyz/iclm/internal/regulatory/store/classification"
	clientstore "github.com/naveenbxyz/iclm/internal/regulatory/store/client"
	"github.com/naveenbxyz/iclm/internal/upstream"
	"github.com/naveenbxyz/iclm/internal/workflow/engine"
	wfhandler "github.com/naveenbxyz/iclm/internal/workflow/handler"
	workflowstore "github.com/naveenbxyz/iclm/internal/workflow/store"
	"github.com/naveenbxyz/iclm/pkg/httputil"
)

// main wires stores, upstream collaborators, the classification service and
// the workflow engine, then runs the HTTP server. Every optional dependency
// degrades to an in-process default so a bare start works without external
// infrastructure.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var (
		clients         service.ClientStore
		classifications service.ClassificationStore
		workflows       engine.WorkflowStore
	)
	if redisClient != nil {
		defer redisClient.Close()
		clients = clientstore.NewRedis(redisClient.Client)
		classifications = classificationstore.NewRedis(redisClient.Client)
		workflows = workflowstore.NewRedis(redisClient.Client)
		log.Info("using redis stores", "url", cfg.RedisURL)
	} else {
		clients = clientstore.NewInMemory()
		classifications = classificationstore.NewInMemory()
		workflows = workflowstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	var registry upstream.ClientRegistry
	if cfg.RegistryDSN != "" {
		pg, err := upstream.NewPostgresRegistry(cfg.RegistryDSN)
		if err != nil {
			log.Error("client registry connection failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		registry = pg
		log.Info("using postgres client registry")
	} else {
		mem := upstream.NewMemoryRegistry()
		upstream.SeedDemoClients(mem)
		registry = mem
		log.Info("using seeded in-memory client registry")
	}

	var fetcher upstream.DocumentFetcher = upstream.StaticDocuments{}
	if cfg.DocumentsBaseURL != "" {
		fetcher = upstream.NewHTTPDocumentFetcher(cfg.DocumentsBaseURL, cfg.UpstreamTimeout)
	}
	var analyzer upstream.DocumentAnalyzer = upstream.StaticAnalyzer{}
	if cfg.AnalyzerBaseURL != "" {
		analyzer = upstream.NewHTTPDocumentAnalyzer(cfg.AnalyzerBaseURL, cfg.UpstreamTimeout)
	}
	var dataQuality upstream.DataQualityService = upstream.StaticDataQuality{}
	if cfg.DataQualityBaseURL != "" {
		dataQuality = upstream.NewHTTPDataQualityService(cfg.DataQualityBaseURL, cfg.UpstreamTimeout)
	}
	var completeness upstream.DocumentCompletenessService = upstream.StaticCompleteness{}
	if cfg.CompletenessBaseURL != "" {
		completeness = upstream.NewHTTPCompletenessService(cfg.CompletenessBaseURL, cfg.UpstreamTimeout)
	}

	var publisher audit.Publisher = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafka(cfg.KafkaBrokers, audit.DefaultTopic, func(err error) {
			log.Warn("audit delivery failed", "error", err)
		})
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		publisher = kafka
		log.Info("audit events publishing to kafka", "topic", audit.DefaultTopic)
	}
	defer publisher.Close()

	ruleRegistry := rules.Default()
	cls := classifier.New(ruleRegistry)
	highLevel := checks.NewHighLevelChecker()
	documents := checks.NewDocumentValidator(fetcher, analyzer)
	dq := checks.NewDataQualityChecker(dataQuality)

	regService := service.New(clients, classifications, cls, highLevel, documents, dq,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(publisher),
	)

	wfEngine := engine.New(engine.Deps{
		Workflows:       workflows,
		Clients:         clients,
		Classifications: classifications,
		Registry:        registry,
		Completeness:    completeness,
		Rules:           ruleRegistry,
		Classifier:      cls,
		HighLevel:       highLevel,
		Documents:       documents,
		DataQuality:     dq,
	},
		engine.WithLogger(log),
		engine.WithMetrics(m),
		engine.WithAuditPublisher(publisher),
		engine.WithStepTimeout(cfg.StepTimeout),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	reghandler.New(regService, log).Register(router)
	wfhandler.New(wfEngine, log).Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded", "redis": err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	log.Info("regulatory workflow engine started", "addr", cfg.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
