package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/campusone/campus-hub-api/internal/assistant"
	"github.com/campusone/campus-hub-api/internal/config"
	"github.com/campusone/campus-hub-api/internal/handler"
	"github.com/campusone/campus-hub-api/internal/middleware"
	"github.com/campusone/campus-hub-api/internal/relay"
	"github.com/campusone/campus-hub-api/internal/service"
	"github.com/campusone/campus-hub-api/internal/store"
	"github.com/campusone/campus-hub-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store backend
	var st store.Store
	switch cfg.Store.Backend {
	case "bolt":
		st, err = store.NewBolt(cfg.Store.BoltPath)
		if err != nil {
			log.Error("open bolt store", "error", err)
			os.Exit(1)
		}
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Error("connect to Redis", "error", err)
			os.Exit(1)
		}
		st = store.NewRedis(client)
	case "memory":
		st = store.NewMemory()
	default:
		log.Error("unknown store backend", "backend", cfg.Store.Backend)
		os.Exit(1)
	}
	defer st.Close()
	log.Info("store ready", "backend", cfg.Store.Backend)

	if last, err := st.LoadSession(ctx); err == nil && last != nil {
		log.Info("last persisted session", "email", last.Email, "role", last.Role)
	}

	// Notification transport
	var transport relay.Transport
	if cfg.Relay.Transport == "amqp" {
		amqpConn, err := amqp.Dial(cfg.Relay.AMQPURL)
		if err != nil {
			log.Error("connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpConn.Close()

		amqpCh, err := amqpConn.Channel()
		if err != nil {
			log.Error("open RabbitMQ channel", "error", err)
			os.Exit(1)
		}
		defer amqpCh.Close()

		transport, err = relay.NewAMQPTransport(amqpCh, cfg.Relay.Queue)
		if err != nil {
			log.Error("setup notification queue", "error", err)
			os.Exit(1)
		}
		log.Info("connected to RabbitMQ")
	}
	notifier := relay.New(transport, cfg.Relay.LogCapacity, cfg.Relay.DeliveryDelay, log)

	// Services
	activity, err := service.NewActivityLog(ctx, st, log)
	if err != nil {
		log.Error("load activity log", "error", err)
		os.Exit(1)
	}
	shopSvc, err := service.NewShopService(ctx, st, log)
	if err != nil {
		log.Error("init shop service", "error", err)
		os.Exit(1)
	}
	authSvc, err := service.NewAuthService(ctx, st, notifier, activity, log, cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Error("init auth service", "error", err)
		os.Exit(1)
	}
	aptSvc, err := service.NewAppointmentService(ctx, st, shopSvc, notifier, activity, log,
		service.WithReminderWindow(cfg.Sweep.ReminderWindow),
		service.WithReminderCatchup(cfg.Sweep.ReminderCatchup),
	)
	if err != nil {
		log.Error("init appointment service", "error", err)
		os.Exit(1)
	}
	prime := assistant.New(shopSvc, aptSvc, nil)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	shopH := handler.NewShopHandler(shopSvc)
	aptH := handler.NewAppointmentHandler(aptSvc)
	replH := handler.NewReplicationHandler(authSvc, activity, notifier)
	assistH := handler.NewAssistantHandler(prime)
	healthH := handler.NewHealthHandler(st)

	// Worker
	sweeper := worker.NewSweepWorker(aptSvc, cfg.Sweep.Interval, log)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWT.Secret), authH.Logout)

		shops := v1.Group("/shops")
		shops.GET("", shopH.List)
		shops.GET("/:id", shopH.GetByID)

		sellerShops := shops.Group("", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.SellerOnly())
		sellerShops.POST("/:id/items", shopH.AddItem)
		sellerShops.PUT("/:id/items/:itemID", shopH.UpdateItem)

		appointments := v1.Group("/appointments", middleware.AuthMiddleware(cfg.JWT.Secret))
		appointments.POST("", aptH.Book)
		appointments.GET("", aptH.ListMine)

		sellerApts := appointments.Group("", middleware.SellerOnly())
		sellerApts.GET("/shop", aptH.ListForShop)
		sellerApts.POST("/:id/accept", aptH.Accept)
		sellerApts.POST("/:id/decline", aptH.Decline)
		sellerApts.POST("/:id/settle", aptH.SettlePayment)
		sellerApts.POST("/:id/close", aptH.Close)

		replication := v1.Group("/replication", middleware.AuthMiddleware(cfg.JWT.Secret))
		replication.GET("/export", replH.Export)
		replication.POST("/import", replH.Import)

		v1.GET("/activity", middleware.AuthMiddleware(cfg.JWT.Secret), replH.Activity)
		v1.GET("/relay/log", middleware.AuthMiddleware(cfg.JWT.Secret), replH.RelayLog)

		v1.POST("/assistant/tool", middleware.AuthMiddleware(cfg.JWT.Secret), assistH.ToolCall)
	}

	sweeper.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	sweeper.Stop()
	cancel()
	log.Info("server stopped")
}
