package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent"
	"github.com/quorumhq/concierge/api/handlers"
	"github.com/quorumhq/concierge/config"
	"github.com/quorumhq/concierge/conversation"
	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/internal/metrics"
	"github.com/quorumhq/concierge/internal/server"
	"github.com/quorumhq/concierge/internal/telemetry"
)

// poolGaugeInterval paces directory pool gauge updates.
const poolGaugeInterval = 30 * time.Second

// Server wires the concierge service: directory, conversation store,
// agent roster, orchestrator, HTTP handlers, and the metrics endpoint.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	otelProviders *telemetry.Providers

	httpManager    *server.Manager
	metricsManager *server.Manager

	users         *directory.Store
	conversations conversation.Store
	redisStore    *conversation.RedisStore
	roster        *agent.Roster
	orchestrator  *agent.Orchestrator

	healthHandler     *handlers.HealthHandler
	chatHandler       *handlers.ChatHandler
	agentsHandler     *handlers.AgentsHandler
	userHandler       *handlers.UserHandler
	networkingHandler *handlers.NetworkingHandler

	collector *metrics.Collector

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// NewServer creates an unstarted server.
func NewServer(cfg *config.Config, logger *zap.Logger, otelProviders *telemetry.Providers) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		otelProviders: otelProviders,
	}
}

// Start initializes all components and begins serving.
func (s *Server) Start() error {
	s.collector = metrics.NewCollector("concierge", s.logger)

	if err := s.initStores(); err != nil {
		return fmt.Errorf("failed to init stores: %w", err)
	}

	if err := s.initPipeline(); err != nil {
		return fmt.Errorf("failed to init turn pipeline: %w", err)
	}

	s.initHandlers()

	s.backgroundCtx, s.backgroundCancel = context.WithCancel(context.Background())

	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	go s.recordPoolGauges(s.backgroundCtx)

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.String("conversation_backend", s.cfg.Conversation.Backend),
	)

	return nil
}

func (s *Server) initStores() error {
	users, err := directory.Open(directory.Config{
		Driver:          s.cfg.Directory.Driver,
		DSN:             s.cfg.Directory.DSN(),
		MaxIdleConns:    s.cfg.Directory.MaxIdleConns,
		MaxOpenConns:    s.cfg.Directory.MaxOpenConns,
		ConnMaxLifetime: s.cfg.Directory.ConnMaxLifetime,
	}, s.logger)
	if err != nil {
		return err
	}
	if err := users.InstrumentQueries("directory", s.collector); err != nil {
		return err
	}
	s.users = users

	switch s.cfg.Conversation.Backend {
	case "redis":
		redisStore, err := conversation.NewRedisStore(conversation.RedisConfig{
			Addr:     s.cfg.Redis.Addr,
			Password: s.cfg.Redis.Password,
			DB:       s.cfg.Redis.DB,
			TTL:      s.cfg.Conversation.TTL,
			PoolSize: s.cfg.Redis.PoolSize,
		}, s.logger)
		if err != nil {
			return err
		}
		s.redisStore = redisStore
		s.conversations = redisStore
	default:
		s.conversations = conversation.NewMemoryStore()
	}

	return nil
}

func (s *Server) initPipeline() error {
	roster, err := agent.NewConferenceRoster(s.users, agent.RosterConfig{
		ToolTimeout:       s.cfg.Orchestrator.ToolTimeout,
		GuardrailFailOpen: s.cfg.Orchestrator.GuardrailFailOpen,
	}, s.logger)
	if err != nil {
		return err
	}
	s.roster = roster
	s.orchestrator = agent.NewOrchestrator(roster, s.conversations, s.users, s.collector, s.logger)
	return nil
}

func (s *Server) initHandlers() {
	s.healthHandler = handlers.NewHealthHandler(Version, s.logger)
	s.healthHandler.RegisterCheck(handlers.HealthCheckFunc{
		CheckName: "directory",
		Fn:        s.users.Ping,
	})
	if s.redisStore != nil {
		s.healthHandler.RegisterCheck(handlers.HealthCheckFunc{
			CheckName: "redis",
			Fn:        s.redisStore.Ping,
		})
	}

	s.chatHandler = handlers.NewChatHandler(s.orchestrator, s.roster, s.logger)
	s.agentsHandler = handlers.NewAgentsHandler(s.roster, s.logger)
	s.userHandler = handlers.NewUserHandler(s.users, s.logger)
	s.networkingHandler = handlers.NewNetworkingHandler(s.users, s.logger)
}

func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth)
	mux.HandleFunc("GET /ready", s.healthHandler.HandleReady)
	mux.HandleFunc("GET /version", s.healthHandler.HandleVersion)

	mux.HandleFunc("POST /api/v1/chat", s.chatHandler.HandleChat)
	mux.HandleFunc("GET /api/v1/agents", s.agentsHandler.HandleList)
	mux.HandleFunc("GET /api/v1/users/{identifier}", s.userHandler.HandleGet)
	mux.HandleFunc("GET /api/v1/users/{identifier}/businesses", s.userHandler.HandleBusinesses)
	mux.HandleFunc("GET /api/v1/businesses", s.networkingHandler.HandleBusinessSearch)
	mux.HandleFunc("GET /api/v1/organizations/{id}", s.networkingHandler.HandleOrganization)

	skipAuthPaths := []string{"/health", "/ready", "/version", "/metrics"}
	handler := Chain(mux,
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		RequestLogger(s.logger),
		MetricsMiddleware(s.collector),
		OTelTracing(),
		CORS(s.cfg.Server.CORSAllowedOrigins),
		RateLimiter(s.backgroundCtx, s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst),
		APIKeyAuth(s.cfg.Server.APIKeys, skipAuthPaths),
	)

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		IdleTimeout:     s.cfg.Server.IdleTimeout,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.httpManager = server.NewManager(handler, serverConfig, s.logger)
	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.Int("port", s.cfg.Server.HTTPPort))
	return nil
}

func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.collector.Handler())

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.metricsManager = server.NewManager(mux, serverConfig, s.logger)
	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("Metrics server started", zap.Int("port", s.cfg.Server.MetricsPort))
	return nil
}

// recordPoolGauges periodically exports directory pool statistics.
func (s *Server) recordPoolGauges(ctx context.Context) {
	ticker := time.NewTicker(poolGaugeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := s.users.Stats()
			s.collector.RecordDBConnections("directory", stats.OpenConnections, stats.Idle)
		}
	}
}

// WaitForShutdown blocks until a shutdown signal, then cleans up.
func (s *Server) WaitForShutdown() {
	if s.httpManager != nil {
		s.httpManager.WaitForShutdown()
	}
	s.Shutdown()
}

// Shutdown stops all servers and releases resources.
func (s *Server) Shutdown() {
	s.logger.Info("Starting graceful shutdown...")

	ctx := context.Background()

	if s.backgroundCancel != nil {
		s.backgroundCancel()
	}

	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}

	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	if s.redisStore != nil {
		if err := s.redisStore.Close(); err != nil {
			s.logger.Error("Redis shutdown error", zap.Error(err))
		}
	}

	if s.otelProviders != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s.otelProviders.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Telemetry shutdown error", zap.Error(err))
		}
		cancel()
	}

	s.logger.Info("Graceful shutdown completed")
}
