package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// application holds the shared dependencies of the HTTP server and the
// operator commands.
type application struct {
	config *config.Config
	logger *slog.Logger

	stores store.Stores
	tx     store.TxManager

	jwtService    auth.JWTService
	passwords     *auth.BcryptVerifier
	authenticator *auth.Authenticator
	resolver      *auth.PrincipalResolver

	userService    service.UserService
	taskService    service.TaskService
	commentService service.CommentService
}

// newApplication wires services over the given stores. tx must open
// transactions over the same backing database as stores.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	tx store.TxManager,
	stores store.Stores,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		stores: stores,
		tx:     tx,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwords = auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	app.authenticator, err = auth.NewAuthenticator(stores.Users, app.passwords, app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}
	app.resolver = auth.NewPrincipalResolver(app.jwtService, stores.Users, logger)

	app.userService, err = service.NewUserService(stores.Users, app.passwords, cfg.Auth.AllowAdminSignup, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	statuses := service.StatusMapper{Strict: cfg.Task.StrictStatus}
	app.taskService, err = service.NewTaskService(tx, stores.Tasks, statuses, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.commentService, err = service.NewCommentService(tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}

	logger.Info("application initialized",
		slog.Bool("strict_status", cfg.Task.StrictStatus),
		slog.Bool("allow_admin_signup", cfg.Auth.AllowAdminSignup))
	return app, nil
}

// handler returns the application's root HTTP handler.
func (app *application) handler() http.Handler {
	return app.setupRouter()
}
