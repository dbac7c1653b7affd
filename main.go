package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Kariqs/perfume-api/controllers"
	"github.com/Kariqs/perfume-api/initializers"
	"github.com/Kariqs/perfume-api/middlewares"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/Kariqs/perfume-api/routes"
	"github.com/Kariqs/perfume-api/services"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		return err
	}
	initializers.SetupLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		return err
	}
	defer initializers.CloseDB(db)

	if err := initializers.SyncDatabase(db); err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)

	auth := services.NewAuthService(users, cfg.JWT.Secret, cfg.JWT.TTL, cfg.Admin.Email)
	if err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	notifiers, closeNotifiers := setupNotifiers(cfg)
	defer closeNotifiers()

	var images services.ImageStore
	if cfg.S3.Bucket != "" {
		store, err := utils.NewS3ImageStore(ctx, cfg.S3.Bucket, cfg.S3.Region)
		if err != nil {
			slog.Error("Image uploads disabled", "err", err)
		} else {
			images = store
		}
	}

	server := gin.New()
	server.Use(gin.Recovery())
	if !cfg.IsProduction() {
		server.Use(middlewares.RequestLogger())
	}
	server.Use(cors.New(corsConfig(cfg.CORS.FrontendURL)))

	routes.Setup(server, routes.Handlers{
		Auth:     controllers.NewAuthController(auth),
		Products: controllers.NewProductController(services.NewProductService(products, images)),
		Orders:   controllers.NewOrderController(services.NewOrderService(products, orders, notifiers)),
		Default:  controllers.NewDefaultController(db, cfg.App.Env),
		Tokens:   auth,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupNotifiers wires every sink that has configuration. The returned func
// releases their connections.
func setupNotifiers(cfg *initializers.Config) (*services.Notifiers, func()) {
	notifiers := services.NewNotifiers()
	closers := []func() error{}

	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := services.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			slog.Error("Kafka notifications disabled", "err", err)
		} else {
			notifiers.Add("kafka", kafka)
			closers = append(closers, kafka.Close)
		}
	}

	if cfg.Webhook.URL != "" {
		notifiers.Add("webhook", services.NewWebhookNotifier(cfg.Webhook.URL))
	}

	smtpCfg := utils.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Address:  cfg.SMTP.Address,
		From:     cfg.SMTP.From,
		Password: cfg.SMTP.Password,
	}
	if smtpCfg.Enabled() {
		notifiers.Add("mail", services.NewMailNotifier(smtpCfg))
	}

	slog.Info("Order notifications configured", "sinks", notifiers.Len())
	return notifiers, func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				slog.Error("Failed to close notifier", "err", err)
			}
		}
	}
}

// corsConfig allows local development hosts, Vercel previews and the
// configured frontend.
func corsConfig(frontendURL string) cors.Config {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if frontendURL != "" && origin == frontendURL {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := u.Hostname()
			return host == "localhost" || host == "127.0.0.1" || strings.HasSuffix(host, ".vercel.app")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
