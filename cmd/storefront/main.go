package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart/mirror"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/catalog"
	httpapi "github.com/NyquistJnr/cherrylconcept-sub001/internal/http"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
	"github.com/NyquistJnr/cherrylconcept-sub001/pkg/config"
	"github.com/NyquistJnr/cherrylconcept-sub001/pkg/logger"
	"github.com/NyquistJnr/cherrylconcept-sub001/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("redis connection failed", slog.Any("err", err))
		return
	}

	carts := cart.NewManager(mirror.NewRedisMirror(redisClient), log)

	jar, _ := cookiejar.New(nil)
	authClient := session.NewClient(
		&http.Client{Jar: jar, Timeout: 15 * time.Second},
		cfg.APIBaseURL+"/auth/refresh/",
		cfg.APIBaseURL+"/auth/logout/",
		log,
	)
	resolver := session.NewResolver(
		session.NewMemoryStorage(),
		session.NewRedisStorage(redisClient, "auth:"),
		log,
	)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:           httpapi.NewAuthHandler(session.CookieOptions{Secure: cfg.Production()}, resolver, authClient, log),
		Cart:           httpapi.NewCartHandler(carts, log),
		Catalog:        httpapi.NewCatalogHandler(catalog.NewClient(cfg.APIBaseURL, log), log),
		Orders:         httpapi.NewOrderHandler(authClient, cfg.APIBaseURL+"/orders/", log),
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, "storefront"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("storefront listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", slog.Any("err", err))
	}
	carts.FlushAll(shutdownCtx)

	log.Info("storefront stopped")
}
