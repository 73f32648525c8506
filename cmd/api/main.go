package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"product-extractor/extractor"
	"product-extractor/internal/config"
	"product-extractor/internal/logging"
	"product-extractor/internal/types"
	"product-extractor/messaging"
	"product-extractor/monitor"
	"product-extractor/store"
	"product-extractor/utils"
)

// Server wires the engine, the monitor and the transports
type Server struct {
	cfg    *config.Config
	logger *logrus.Logger

	store   store.Store
	loader  *utils.PageLoader
	monitor *monitor.Monitor
	http    *http.Server
	amqp    *messaging.AMQPClient
	rpc     *messaging.AMQPServer
}

// NewServer creates a new API server
func NewServer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	engine := cfg.Engine()

	st, err := store.Open(ctx, cfg.Store())
	if err != nil {
		return nil, err
	}
	if st == nil {
		logger.Warn("No persistent store configured, stock monitoring is disabled")
	}

	loader := utils.NewPageLoader(engine, logging.Component(logger, "loader"))
	ex := extractor.NewExtractor(engine, logging.Component(logger, "extractor"))
	mon := monitor.New(st, ex, loader, engine, logging.Component(logger, "monitor"))
	mon.OnChange(func(entry types.WatchEntry, previous types.StockStatus) {
		logger.WithFields(logrus.Fields{
			"url":      entry.URL,
			"previous": previous,
			"current":  entry.LastStock,
		}).Info("Stock status changed")
	})

	dispatcher := messaging.NewDispatcher(ex, loader, mon, logging.Component(logger, "dispatcher"))

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		loader:  loader,
		monitor: mon,
		http: &http.Server{
			Addr:         ":" + cfg.HTTPServer.Port,
			Handler:      messaging.NewRouter(dispatcher, logging.Component(logger, "http")),
			ReadTimeout:  cfg.HTTPServer.ReadTimeout,
			WriteTimeout: cfg.HTTPServer.WriteTimeout,
			IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		},
	}

	if cfg.RabbitMQ.URL != "" {
		client, err := messaging.DialAMQP(cfg.RabbitMQ.URL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.amqp = client
		s.rpc = messaging.NewAMQPServer(
			client.Channel,
			dispatcher,
			logging.Component(logger, "amqp"),
			cfg.RabbitMQ.QueueName,
			cfg.RabbitMQ.WorkerPoolSize,
		)
	}

	return s, nil
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	if s.cfg.Monitor.AutoStart {
		if err := s.monitor.Start(ctx, s.cfg.Monitor.Interval); err != nil {
			return err
		}
	}

	if s.rpc != nil {
		go func() {
			if err := s.rpc.Serve(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		s.logger.Infof("Starting API server on port %s", s.cfg.HTTPServer.Port)
		s.logger.Info("Available endpoints:")
		s.logger.Info("  POST /commands  - Run an engine command")
		s.logger.Info("  POST /extract   - Extract one product page")
		s.logger.Info("  POST /watch     - Add a product to the watch-list")
		s.logger.Info("  GET  /watchlist - List watched products")
		s.logger.Info("  GET  /health    - Health check")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Close stops the monitor and releases connections
func (s *Server) Close() {
	s.monitor.Stop()
	if s.amqp != nil {
		if err := s.amqp.Close(); err != nil {
			s.logger.Warnf("Failed to close AMQP connection: %v", err)
		}
	}
	s.loader.Close()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warnf("Failed to close store: %v", err)
		}
	}
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Optional yaml config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("env", cfg.Env).Info("Starting product extraction service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := NewServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to start: %v", err)
	}
	defer server.Close()

	if err := server.Run(ctx); err != nil {
		logger.Errorf("Server stopped: %v", err)
	}
}
