package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/25260173/crema-cafe-demo/docs"
	"github.com/25260173/crema-cafe-demo/internal/catalog"
	"github.com/25260173/crema-cafe-demo/internal/queue"
	"github.com/25260173/crema-cafe-demo/internal/ratelimiter"
	"github.com/25260173/crema-cafe-demo/internal/repo"
	"github.com/25260173/crema-cafe-demo/internal/service"
	mongostore "github.com/25260173/crema-cafe-demo/internal/store/mongo"
	redisstore "github.com/25260173/crema-cafe-demo/internal/store/redis"
	"github.com/25260173/crema-cafe-demo/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config               config
	logger               *zap.SugaredLogger
	rateLimiter          ratelimiter.Limiter
	redis                *redisstore.Storage
	mongo                *mongostore.Storage
	broker               queue.Broker
	catalog              *catalog.Store
	prefsRepo            repo.PreferencesRepository
	cartService          *service.CartService
	customizationService *service.CustomizationService
	orderService         *service.OrderService
	archiveWorker        *worker.OrderArchiveWorker
	fallbackWorker       *worker.FallbackOrderWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	redis       redisConfig
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	catalog     catalogConfig
	orders      ordersConfig
	receipt     receiptConfig
}

type redisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type catalogConfig struct {
	MenuURL     string
	ToppingsURL string
	Timeout     time.Duration
}

type ordersConfig struct {
	Endpoint        string
	SubmitTimeout   time.Duration
	RetryInterval   time.Duration
	RecentListLimit int64
}

type receiptConfig struct {
	CompanyName string
	Address     string
	Cashier     string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/menu", app.getMenuHandler)
		r.Get("/menu/toppings", app.getToppingsHandler)

		r.Post("/sessions", app.createSessionHandler)

		r.Route("/sessions/{session_id}", func(r chi.Router) {
			r.Get("/cart", app.getCartHandler)
			r.Post("/cart", app.addCartLineHandler)
			r.Delete("/cart", app.clearCartHandler)
			r.Delete("/cart/{line_id}", app.removeCartLineHandler)

			r.Put("/cart/{line_id}/volume", app.setVolumeHandler)
			r.Post("/cart/{line_id}/toppings", app.addToppingHandler)
			r.Delete("/cart/{line_id}/toppings/{topping_id}", app.removeToppingHandler)

			r.Get("/receipt", app.getReceiptHandler)
			r.Get("/receipt/watch", app.watchReceiptHandler)

			r.Get("/preferences", app.getPreferencesHandler)
			r.Put("/preferences", app.savePreferencesHandler)

			r.Post("/orders", app.placeOrderHandler)
			r.Get("/orders", app.getOrderHistoryHandler)
			r.Post("/orders/restore", app.restoreLastOrderHandler)
		})

		r.Get("/orders/recent", app.getRecentOrdersHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Crema Cafe Orders"
	docs.SwaggerInfo.Description = "Ordering API for the Crema Cafe storefront"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.archiveWorker != nil {
		if err := app.archiveWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order archive worker: %w", err)
		}
	}
	if app.fallbackWorker != nil {
		if err := app.fallbackWorker.Start(); err != nil {
			return fmt.Errorf("failed to start fallback order worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.archiveWorker != nil {
			app.archiveWorker.Stop()
		}
		if app.fallbackWorker != nil {
			app.fallbackWorker.Stop()
		}

		if app.mongo != nil {
			if err := app.mongo.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.redis != nil {
			if err := app.redis.Close(); err != nil {
				app.logger.Errorw("error closing Redis", "error", err)
			} else {
				app.logger.Info("Redis connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
