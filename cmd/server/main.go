// Command server runs the lost-and-found matching service: HTTP API, the
// serial-number matcher, the claim coordinator, and the notification outbox
// worker.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	claimhandler "reclaim/internal/claim/handler"
	claimservice "reclaim/internal/claim/service"
	claimstore "reclaim/internal/claim/store"
	itemshandler "reclaim/internal/items/handler"
	itemsservice "reclaim/internal/items/service"
	foundstore "reclaim/internal/items/store/found"
	loststore "reclaim/internal/items/store/lost"
	matchhandler "reclaim/internal/match/handler"
	"reclaim/internal/match/matcher"
	matchstore "reclaim/internal/match/store"
	"reclaim/internal/notify"
	notifyhandler "reclaim/internal/notify/handler"
	"reclaim/internal/notify/publisher"
	"reclaim/internal/notify/store/inbox"
	"reclaim/internal/notify/store/outbox"
	"reclaim/internal/notify/worker"
	"reclaim/internal/platform/config"
	"reclaim/internal/platform/httpserver"
	"reclaim/internal/platform/logger"
	"reclaim/internal/platform/metrics"
	"reclaim/internal/platform/middleware"
	pgplatform "reclaim/internal/platform/postgres"
	httptransport "reclaim/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgplatform.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := pgplatform.Migrate(db); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	kafka, err := publisher.NewKafka(ctx, cfg.KafkaBrokers, cfg.NotifyTopic)
	if err != nil {
		return err
	}
	defer kafka.Close()

	m := metrics.New()

	lostStore := loststore.NewPostgres(db)
	foundStore := foundstore.NewPostgres(db)
	matchStore := matchstore.NewPostgres(db)
	returnStore := claimstore.NewPostgres(db)
	outboxStore := outbox.NewPostgres(db)
	inboxStore := inbox.NewRedis(redisClient)

	dispatcher := notify.NewDispatcher(outboxStore, inboxStore, log, m)
	itemMatcher := matcher.New(lostStore, foundStore, matchStore, dispatcher, log, m)
	itemsSvc := itemsservice.New(lostStore, foundStore, itemMatcher, log, m)

	claimRunner := newClaimPostgresTx(db, claimservice.Stores{
		Matches: matchStore,
		Lost:    lostStore,
		Found:   foundStore,
		Returns: returnStore,
	})
	claimSvc := claimservice.New(claimRunner, dispatcher, log, m)

	router := httptransport.NewRouter(httptransport.Handlers{
		Items:         itemshandler.New(itemsSvc, log),
		Matches:       matchhandler.New(matchStore, log),
		Claims:        claimhandler.New(claimSvc, returnStore, log),
		Notifications: notifyhandler.New(inboxStore, log),
	}, middleware.NewHMACValidator(cfg.JWTSigningKey), log, m)

	srv := httpserver.New(cfg.Addr, router)
	outboxWorker := worker.New(outboxStore, kafka, log, cfg.OutboxInterval, cfg.OutboxBatch)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("outbox worker running", "interval", cfg.OutboxInterval.String())
		if err := outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
