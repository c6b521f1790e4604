// Package bootstrap arma el grafo de dependencias (repositorios, sesiones, casos de uso)
// según la configuración. Lo comparten cmd/api y cmd/admin.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	appanalytics "github.com/jhoicas/goldfolio-api/internal/application/analytics"
	"github.com/jhoicas/goldfolio-api/internal/application/auth"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/memory"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/goldfolio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/goldfolio-api/internal/interfaces/http"
	"github.com/jhoicas/goldfolio-api/pkg/config"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// repositories agrupa los adaptadores de un driver.
type repositories struct {
	branches  repository.BranchRepository
	users     repository.UserRepository
	creds     repository.CredentialRepository
	clients   repository.ClientRepository
	receipts  repository.DepositReceiptRepository
	analytics repository.AnalyticsRepository
	tx        ports.AccountTxRunner
}

// Container dependencias ya construidas. Close libera pool y store de sesiones.
type Container struct {
	AuthUC      *auth.AuthUseCase
	BranchUC    *usecase.BranchUseCase
	UserUC      *usecase.UserUseCase
	ClientUC    *usecase.ClientUseCase
	DepositUC   *usecase.DepositReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry

	closers []func()
}

// New conecta el almacenamiento y arma los casos de uso.
// Con DB_DRIVER=postgres aplica migraciones si MIGRATE_ON_START está activo.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{}

	repos, err := c.openRepositories(ctx, cfg.DB, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	sessions, err := session.New(ctx, cfg.Session)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("store de sesiones: %w", err)
	}
	c.closers = append(c.closers, func() { _ = sessions.Close() })

	c.Registry = prometheus.NewRegistry()
	c.Metrics = metrics.New(c.Registry)

	c.AuthUC = auth.NewAuthUseCase(repos.creds, repos.users, sessions, c.Metrics, auth.Config{
		Secret:           cfg.JWT.Secret,
		ExpMinutes:       cfg.JWT.Expiration,
		Issuer:           cfg.JWT.Issuer,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LoginWindow:      time.Duration(cfg.Auth.LoginWindowMinutes) * time.Minute,
	}, log)
	c.BranchUC = usecase.NewBranchUseCase(repos.branches, log)
	c.UserUC = usecase.NewUserUseCase(repos.users, repos.tx, c.AuthUC, log)
	c.ClientUC = usecase.NewClientUseCase(repos.clients, c.Metrics, log)
	c.DepositUC = usecase.NewDepositReceiptUseCase(
		repos.receipts, repos.branches, repos.users,
		infrapdf.NewReceiptGenerator(""), c.Metrics, log,
	)
	c.DashboardUC = appanalytics.NewDashboardUseCase(repos.analytics)
	return c, nil
}

func (c *Container) openRepositories(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			branches:  memory.NewBranchRepository(store),
			users:     memory.NewUserRepository(store),
			creds:     memory.NewCredentialRepository(store),
			clients:   memory.NewClientRepository(store),
			receipts:  memory.NewDepositReceiptRepository(store),
			analytics: memory.NewAnalyticsRepository(store),
			tx:        memory.NewTxRunner(store),
		}, nil
	}

	if cfg.MigrateOnStart {
		if err := postgres.UpMigrations(ctx, cfg.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c.closers = append(c.closers, pool.Close)
	return &repositories{
		branches:  postgres.NewBranchRepository(pool),
		users:     postgres.NewUserRepository(pool),
		creds:     postgres.NewCredentialRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		receipts:  postgres.NewDepositReceiptRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
	}, nil
}

// RouterDeps adapta el contenedor a las dependencias del router HTTP.
func (c *Container) RouterDeps(log *logger.Logger) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:      c.AuthUC,
		BranchUC:    c.BranchUC,
		UserUC:      c.UserUC,
		ClientUC:    c.ClientUC,
		DepositUC:   c.DepositUC,
		DashboardUC: c.DashboardUC,
		Log:         log,
	}
}

// Close libera los recursos en orden inverso al de apertura.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
