// cmd/concierge/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/clock"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/dedup"
	"dining-concierge/internal/mailer"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/restaurants"

	cg "dining-concierge/internal/workers/conversation/chat-gateway"
	vds "dining-concierge/internal/workers/conversation/validate-dining-slots"
	ss "dining-concierge/internal/workers/fulfillment/send-suggestions"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting concierge service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 10, 2*time.Second, zapLog, "Elasticsearch initialization")
	if err != nil {
		zapLog.Fatal("Elasticsearch unavailable", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis initialization")
	if err != nil {
		zapLog.Fatal("Redis unavailable", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Init AWS clients ---
	sqsClient, err := aws.NewSQSClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("SQS client initialization failed", zap.Error(err))
	}
	dynamoClient, err := aws.NewDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("DynamoDB client initialization failed", zap.Error(err))
	}
	sesClient, err := aws.NewSESClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("SES client initialization failed", zap.Error(err))
	}
	lexClient, err := aws.NewLexRuntimeClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("Lex client initialization failed", zap.Error(err))
	}

	// --- Wire components ---
	requestQueue, err := queue.NewSQSQueue(sqsClient, cfg.AWS.SQS.QueueURL)
	if err != nil {
		zapLog.Fatal("queue initialization failed", zap.Error(err))
	}
	store, err := restaurants.NewStore(dynamoClient, cfg.AWS.DynamoDB.RestaurantsTable, log)
	if err != nil {
		zapLog.Fatal("store initialization failed", zap.Error(err))
	}
	search := restaurants.NewSearch(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	mail, err := mailer.New(sesClient, cfg.AWS.SES.FromEmail, log)
	if err != nil {
		zapLog.Fatal("mailer initialization failed", zap.Error(err))
	}
	dedupStore, err := dedup.NewStore(redisClient.Client, time.Duration(cfg.Fulfillment.DedupTTL)*time.Second)
	if err != nil {
		zapLog.Fatal("dedup store initialization failed", zap.Error(err))
	}

	dialogClock := clock.NewFixedOffset(cfg.Dialog.UTCOffsetHours)
	dialogHandler := vds.NewHandler(vds.DefaultConfig(), vds.NewValidator(dialogClock), requestQueue, log)

	gateway := cg.NewHandler(cg.NewService(&cg.Config{
		BotID:      cfg.AWS.Lex.BotID,
		BotAliasID: cfg.AWS.Lex.BotAliasID,
		LocaleID:   cfg.AWS.Lex.LocaleID,
	}, lexClient, log), log)

	bridge := ss.NewHandler(ss.DefaultConfig(), requestQueue, search, store, dedupStore, mail, log)

	// --- HTTP server ---
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Post("/v1/chat", gateway.ServeHTTP)
	router.Post("/v1/dialog", dialogHandler.ServeHTTP)
	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Fulfillment poller ---
	pollerCtx, stopPoller := context.WithCancel(ctx)
	pollInterval := time.Duration(cfg.Fulfillment.PollInterval) * time.Second
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pollerCtx.Done():
				return
			case <-ticker.C:
				if err := bridge.Run(pollerCtx); err != nil {
					zapLog.Warn("fulfillment pass failed", zap.Error(err))
				}
			}
		}
	}()

	zapLog.Info("Concierge service started",
		zap.String("environment", cfg.App.Environment),
		zap.Duration("pollInterval", pollInterval),
	)

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutting down...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Concierge service stopped")
}
