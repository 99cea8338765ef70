package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/nouressalam/storefront/internal/auth/application"
	authdomain "github.com/nouressalam/storefront/internal/auth/domain"
	authpg "github.com/nouressalam/storefront/internal/auth/infrastructure/persistence/postgres"
	authhttp "github.com/nouressalam/storefront/internal/auth/interfaces/http"
	cartapp "github.com/nouressalam/storefront/internal/cart/application"
	cartdomain "github.com/nouressalam/storefront/internal/cart/domain"
	cartcatalog "github.com/nouressalam/storefront/internal/cart/infrastructure/catalog"
	cartmsg "github.com/nouressalam/storefront/internal/cart/infrastructure/messaging"
	cartredis "github.com/nouressalam/storefront/internal/cart/infrastructure/persistence/redis"
	carthttp "github.com/nouressalam/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/nouressalam/storefront/internal/catalog/application"
	catalogdomain "github.com/nouressalam/storefront/internal/catalog/domain"
	catalogpg "github.com/nouressalam/storefront/internal/catalog/infrastructure/persistence/postgres"
	cataloghttp "github.com/nouressalam/storefront/internal/catalog/interfaces/http"
	orderapp "github.com/nouressalam/storefront/internal/order/application"
	orderdomain "github.com/nouressalam/storefront/internal/order/domain"
	ordermsg "github.com/nouressalam/storefront/internal/order/infrastructure/messaging"
	orderpg "github.com/nouressalam/storefront/internal/order/infrastructure/persistence/postgres"
	orderhttp "github.com/nouressalam/storefront/internal/order/interfaces/http"
	"github.com/nouressalam/storefront/pkg/cache"
	"github.com/nouressalam/storefront/pkg/config"
	"github.com/nouressalam/storefront/pkg/db"
	"github.com/nouressalam/storefront/pkg/idgen"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/metrics"
	"github.com/nouressalam/storefront/pkg/middleware"
	"github.com/nouressalam/storefront/pkg/mq"
	"github.com/nouressalam/storefront/pkg/response"
	"github.com/nouressalam/storefront/pkg/token"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/server/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	ctx := context.Background()

	database, err := db.Init(db.Config{
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "connect db failed", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&authdomain.User{},
		&catalogdomain.Product{},
		&catalogdomain.ProductVariant{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&orderdomain.TimelineEvent{},
	); err != nil {
		logger.Fatal(ctx, "migrate failed", "error", err)
	}

	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "connect redis failed", "error", err)
	}
	defer redisCache.Close()

	ids, err := idgen.New(1)
	if err != nil {
		logger.Fatal(ctx, "init id generator failed", "error", err)
	}

	m := metrics.New("server")
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = m.Serve(cfg.Metrics.Port)
	}

	var cartEvents cartdomain.EventPublisher = cartmsg.NoopEventPublisher{}
	var orderEvents orderdomain.EventPublisher = ordermsg.NoopEventPublisher{}
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "create kafka producer failed", "error", err)
		}
		defer producer.Close()
		cartEvents = cartmsg.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
		orderEvents = ordermsg.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
	}

	tokenManager := token.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTL)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTL)*time.Hour,
	)

	// 仓储与应用服务装配
	userRepo := authpg.NewUserRepository(database.DB)
	authService := authapp.NewAuthService(userRepo, tokenManager, ids)

	catalogRepo := catalogpg.NewCatalogRepository(database.DB)
	catalogService := catalogapp.NewCatalogService(catalogRepo)

	cartRepo := cartredis.NewCartRepository(redisCache)
	cartService := cartapp.NewCartService(cartRepo, cartcatalog.NewProductProvider(catalogService), cartEvents, ids)

	orderRepo := orderpg.NewOrderRepository(database.DB)
	orderService := orderapp.NewOrderService(orderRepo, cartService, orderEvents, ids)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinMetricsMiddleware(m),
		middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	api := engine.Group("/api/v1")
	authhttp.NewAuthHandler(authService, m).RegisterRoutes(api)
	cataloghttp.NewCatalogHandler(catalogService).RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(tokenManager))
	carthttp.NewCartHandler(cartService, m).RegisterRoutes(authed)
	orderhttp.NewOrderHandler(orderService, m).RegisterRoutes(authed)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(tokenManager), middleware.RoleRequired(string(authdomain.RoleAdmin)))
	cataloghttp.NewCatalogHandler(catalogService).RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}
