package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/userkeeper-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/userkeeper-server/internal/api/grpc/server"
	"github.com/dtroode/userkeeper-server/internal/api/http/handler"
	httpRouter "github.com/dtroode/userkeeper-server/internal/api/http/router"
	httpServer "github.com/dtroode/userkeeper-server/internal/api/http/server"
	"github.com/dtroode/userkeeper-server/internal/config"
	"github.com/dtroode/userkeeper-server/internal/directory"
	"github.com/dtroode/userkeeper-server/internal/events/rabbitmq"
	redisevents "github.com/dtroode/userkeeper-server/internal/events/redis"
	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
	"github.com/dtroode/userkeeper-server/internal/notifier/email"
	"github.com/dtroode/userkeeper-server/internal/repository/postgres"
	"github.com/dtroode/userkeeper-server/internal/server"
	"github.com/dtroode/userkeeper-server/internal/service"
	"github.com/dtroode/userkeeper-server/internal/storage/filesystem"
	storage "github.com/dtroode/userkeeper-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	healthChecks := map[string]handler.HealthChecker{"postgres": db}

	userRepo := postgres.NewUserRepository(db)

	blobStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize avatar storage", "error", err)
	}

	directoryClient := directory.New(
		directory.NewHTTPClient(cfg.Directory.Timeout),
		cfg.Directory.BaseURL,
		cfg.Directory.APIKey,
		logger,
	)

	mailClient, err := email.NewClient(cfg.SMTP)
	if err != nil {
		logger.Fatal("failed to create mail client", "error", err)
	}
	notifier := email.NewSender(mailClient, cfg.SMTP.From, logger)

	var publisher model.EventPublisher
	switch cfg.Broker.Kind {
	case config.BrokerRedis:
		redisClient, err := redisevents.NewClient(ctx, cfg.Broker.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		healthChecks["redis"] = pingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
		publisher = redisevents.NewPublisher(redisClient, cfg.Broker.PublishTimeout, logger)
	default:
		publisher = rabbitmq.NewPublisher(cfg.Broker.RabbitMQURL, cfg.Broker.PublishTimeout, logger)
	}

	userService := service.NewUser(userRepo, directoryClient, notifier, publisher, logger)
	avatarService := service.NewAvatar(userRepo, directoryClient, blobStore, logger)

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	servers := []model.Server{
		registerGRPCServer(userService, avatarService, logger, fmt.Sprintf(":%s", cfg.GRPC.Port)),
		httpServer.NewHTTPServer(
			httpRouter.New(userService, avatarService, healthChecks, logger),
			fmt.Sprintf(":%s", cfg.HTTP.Port),
			cfg.HTTP.ReadTimeout,
			cfg.HTTP.WriteTimeout,
		),
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newBlobStore(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	if cfg.Avatar.Backend != config.AvatarBackendMinio {
		return filesystem.NewStore(cfg.Avatar.Dir), nil
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	client, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func registerGRPCServer(
	userService *service.User,
	avatarService *service.Avatar,
	logger *logger.Logger,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(userService, avatarService, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
