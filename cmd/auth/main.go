package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgresrepo "github.com/lumenchat/auth-service/internal/adapters/db/postgres"
	redisrepo "github.com/lumenchat/auth-service/internal/adapters/db/redis"
	s3store "github.com/lumenchat/auth-service/internal/adapters/storage/s3"
	httptransport "github.com/lumenchat/auth-service/internal/adapters/transport/http"
	httpmw "github.com/lumenchat/auth-service/internal/adapters/transport/http/middleware"
	"github.com/lumenchat/auth-service/internal/app/auth/password"
	appsvc "github.com/lumenchat/auth-service/internal/app/auth/service"
	apptoken "github.com/lumenchat/auth-service/internal/app/auth/token"
	"github.com/lumenchat/auth-service/internal/infra/config"
	lg "github.com/lumenchat/auth-service/internal/infra/log"
	"github.com/lumenchat/auth-service/internal/infra/migrate"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	objectStore, err := s3store.New(context.Background(), cfg)
	if err != nil {
		zapLog.Fatal("failed to init object store", zap.Error(err))
	}

	issuer, err := apptoken.NewJWTIssuer(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token issuer", zap.Error(err))
	}

	userRepo := postgresrepo.NewPostgresUserRepo(db)
	userCache := redisrepo.NewRedisUserCache(redisCli, cfg.UserCacheTTL)
	hasher := password.NewArgonHasher(cfg.PasswordPepper)

	svc := appsvc.New(userRepo, userCache, objectStore, hasher, issuer, cfg, validator.New(), zapLog)
	h := httptransport.NewHandler(svc, zapLog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(httpmw.Metrics())
	router.Use(httpmw.NewRateLimitPerIP(50, 100, 10_000, time.Hour))

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization", "token",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api/auth")
	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)

	guarded := api.Group("")
	guarded.Use(httpmw.RequireAuth(svc, zapLog))
	guarded.GET("/check", h.Check)
	guarded.PUT("/update-profile", h.UpdateProfile)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
