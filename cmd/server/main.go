package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/config"   // Internal config loader
	"github.com/iliyamo/cinema-booking/internal/database" // MySQL connection and schema
	"github.com/iliyamo/cinema-booking/internal/handler"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/queue"
	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/repository/memstore"
	"github.com/iliyamo/cinema-booking/internal/router" // Internal router setup
	"github.com/iliyamo/cinema-booking/internal/service"
)

// stores bundles one storage backend.
type stores struct {
	movies    service.MovieStore
	showtimes service.ShowtimeStore
	tickets   service.TicketStore
	ping      handler.Pinger
	close     func() error
}

// storeOpener is swapped in tests.
var storeOpener = openStores

func openStores(ctx context.Context, cfg config.Config, log hclog.Logger) (stores, error) {
	if cfg.Store == config.StoreMemory {
		st := memstore.New()
		log.Warn("using in-memory store; data is lost on exit")
		return stores{
			movies:    st.Movies(),
			showtimes: st.Showtimes(),
			tickets:   st.Tickets(),
			ping:      st,
			close:     func() error { return nil },
		}, nil
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return stores{}, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return stores{}, err
		}
		log.Info("schema applied")
	}
	return stores{
		movies:    repository.NewMovieRepo(db),
		showtimes: repository.NewShowtimeRepo(db),
		tickets:   repository.NewTicketRepo(db),
		ping:      db,
		close:     db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		hclog.Default().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := config.NewLogger("cinema", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails.  Every resource
// it opens is released before it returns.
func run(ctx context.Context, cfg config.Config, log hclog.Logger) error {
	st, err := storeOpener(ctx, cfg, log.Named("store"))
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("closing store", "error", err)
		}
	}()

	// Redis backs the response cache and the rate limiter; both switch off without it.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable; cache and rate limiting disabled", "addr", cfg.Redis.Address())
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var events service.TicketEvents
	if cfg.RabbitMQURL != "" {
		pub := queue.NewPublisher(cfg.RabbitMQURL, log.Named("queue"))
		defer func() { _ = pub.Close() }()
		events = pub
	}

	movies := service.NewMovieService(st.movies, log.Named("movies"))
	showtimes := service.NewShowtimeService(st.showtimes, st.movies, log.Named("showtimes"))
	tickets := service.NewTicketService(st.tickets, st.showtimes, events, log.Named("tickets"))

	handlerLog := log.Named("handler")
	e := router.New(router.Handlers{
		Movies:    handler.NewMovieHandler(movies, handlerLog),
		Showtimes: handler.NewShowtimeHandler(showtimes, handlerLog),
		Tickets:   handler.NewTicketHandler(tickets, handlerLog),
		Health:    handler.Health(st.ping, handlerLog),
	}, router.Options{
		Log:            log,
		JWTSecret:      cfg.JWTSecret,
		Cache:          middleware.NewRedisCache(cfg.Cache, rdb, log.Named("cache")),
		RateLimit:      middleware.NewTokenBucket(cfg.RateLimit, rdb, log.Named("ratelimit")),
		RequestTimeout: cfg.RequestTimeout,
	})

	addr := ":" + cfg.Port // Address string with port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "store", cfg.Store, "auth", cfg.JWTSecret != "")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}
	return shutdown(e)
}

func shutdown(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
