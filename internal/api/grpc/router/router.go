package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"

	"github.com/dtroode/userkeeper-server/internal/api/grpc/handler"
	"github.com/dtroode/userkeeper-server/internal/api/grpc/middleware"
	"github.com/dtroode/userkeeper-server/internal/logger"
)

// Router represents a gRPC router for user and avatar operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	userService   handler.UserService
	avatarService handler.AvatarService
	logger        *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	userService handler.UserService,
	avatarService handler.AvatarService,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:   userService,
		avatarService: avatarService,
		logger:        logger,
	}
}

// Register builds a gRPC server with request logging and panic recovery
// interceptors and registers the Users service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
	r.registerUserRoutes(s)

	return s
}

func (r *Router) registerUserRoutes(server *grpc.Server) {
	usersHandler := handler.NewUsers(r.userService, r.avatarService, r.logger)
	handler.RegisterUsersServer(server, usersHandler)
}
