// admin CLI de operación: migraciones y alta del primer MASTER.
//
// Uso:
//
//	go run ./cmd/admin migrate up
//	go run ./cmd/admin migrate status
//	go run ./cmd/admin bootstrap-master --email root@goldfolio.local --password ******** --username root
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/bootstrap"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/goldfolio-api/pkg/config"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
	"github.com/spf13/cobra"
)

// adminPrincipal identidad con la que corre la CLI (no existe como usuario).
var adminPrincipal = access.Principal{UserID: "cli-admin", Role: entity.RoleMaster}

func main() {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "admin",
		Short:         "CLI de operación de Goldfolio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("la CLI requiere DB_DRIVER=%s (actual %q)", config.DriverPostgres, cfg.DB.Driver)
			}
			return nil
		},
	}

	// migrate
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (goose)",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.UpMigrations(cmd.Context(), cfg.DB.ConnectionString()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra la versión aplicada del esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := postgres.MigrationVersion(cmd.Context(), cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			fmt.Printf("version=%d\n", v)
			return nil
		},
	})

	// bootstrap-master
	var email, password, username string
	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap-master",
		Short: "Crea el primer usuario MASTER (credencial + perfil)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email y --password son obligatorios")
			}
			if username == "" {
				username = email
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			c, err := bootstrap.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			u, err := c.UserUC.Create(cmd.Context(), adminPrincipal, dto.CreateUserRequest{
				Email:    email,
				Password: password,
				Username: username,
				Role:     string(entity.RoleMaster),
			})
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				fmt.Printf("ya existe un usuario con email %s\n", email)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("MASTER creado id=%s email=%s\n", u.ID, u.Email)
			return nil
		},
	}
	bootstrapCmd.Flags().StringVar(&email, "email", "", "email del MASTER")
	bootstrapCmd.Flags().StringVar(&password, "password", "", "contraseña inicial (mínimo 6 caracteres)")
	bootstrapCmd.Flags().StringVar(&username, "username", "", "nombre visible (por defecto el email)")

	root.AddCommand(migrateCmd, bootstrapCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
