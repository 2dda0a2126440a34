package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
	"github.com/tasktrack/tasktrack-api/internal/redact"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "tasktrack",
		Short:         "Task tracking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default ./config.yaml if present)")

	load := func() (*config.Config, *slog.Logger, error) {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		log, err := logger.Setup(cfg.Server)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
		}
		return cfg, log, nil
	}

	root.AddCommand(serveCmd(load), migrateCmd(load), usersCmd(load))
	return root
}

type loadFunc func() (*config.Config, *slog.Logger, error)

// withDatabase loads configuration, opens the database and runs fn.
func withDatabase(
	ctx context.Context,
	load loadFunc,
	fn func(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) error,
) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Error("failed to open database", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, cfg, log, db)
}

// postgresApplication wires the application over the Postgres stores.
func postgresApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	tx := postgres.NewTxManager(db, log)
	return newApplication(cfg, log, tx, tx.Stores())
}

func serveCmd(load loadFunc) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), load, func(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) error {
				if migrate {
					if err := postgres.Migrate(ctx, db, "up", log); err != nil {
						return err
					}
				}

				app, err := postgresApplication(cfg, log, db)
				if err != nil {
					return err
				}

				ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
				if err != nil {
					return fmt.Errorf("failed to listen: %w", err)
				}
				return app.serveHTTP(ctx, ln, app.handler())
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|reset|status|version",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "reset", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), load, func(ctx context.Context, _ *config.Config, log *slog.Logger, db *sql.DB) error {
				return postgres.Migrate(ctx, db, args[0], log)
			})
		},
	}
}

func usersCmd(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage identities"}
	cmd.AddCommand(usersCreateCmd(load), usersListCmd(load), usersHashPasswordCmd())
	return cmd
}

func usersCreateCmd(load loadFunc) *cobra.Command {
	var in service.SignupInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an identity, including ADMIN regardless of signup policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), load, func(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) error {
				app, err := postgresApplication(cfg, log, db)
				if err != nil {
					return err
				}
				user, err := app.userService.CreateUser(ctx, in)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", user.Role, user.Email, user.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&in.Role, "role", string(domain.RoleEmployee), "ADMIN or EMPLOYEE")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func usersListCmd(load loadFunc) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List identities holding a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), load, func(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) error {
				app, err := postgresApplication(cfg, log, db)
				if err != nil {
					return err
				}
				users, err := app.userService.ListUsers(ctx, r)
				if err != nil {
					return err
				}
				renderUsers(cmd.OutOrStdout(), users)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "ADMIN or EMPLOYEE")
	return cmd
}

func usersHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password PASSWORD...",
		Short: "Print bcrypt hashes for seeding the users table by hand",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher := auth.NewBcryptVerifier(cost)
			for _, password := range args {
				hash, err := hasher.Hash(password)
				if err != nil {
					return fmt.Errorf("failed to hash password: %w", err)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), hash); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func renderUsers(w io.Writer, users []*domain.User) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "Name", "Email", "Role", "Created"})
	for _, u := range users {
		tw.AppendRow(table.Row{u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02")})
	}
	tw.AppendFooter(table.Row{"", "", "", "Total", len(users)})
	tw.Render()
}
