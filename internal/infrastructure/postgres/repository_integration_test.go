//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/goldfolio-api/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("goldfolio"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.UpMigrations(ctx, dsn))

	version, err := postgres.MigrationVersion(ctx, dsn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func receipt(id, bank, op, branch string, at time.Time) *entity.DepositReceipt {
	return &entity.DepositReceipt{
		ID:                   id,
		ClientName:           "Juan Pérez",
		Bank:                 bank,
		DepositAmount:        decimal.RequireFromString("1000.50"),
		DepositCurrency:      entity.CurrencyARS,
		OperationNumber:      op,
		CounterpartyCurrency: entity.CurrencyUSD,
		BranchID:             branch,
		CreatedBy:            "u1",
		CreatedAt:            at,
	}
}

func TestPostgres_Repositories(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("deposit receipts unique index", func(t *testing.T) {
		repo := postgres.NewDepositReceiptRepository(pool)
		require.NoError(t, repo.Create(ctx, receipt("r1", "Banco Nación", "12345", "b1", now)))
		err := repo.Create(ctx, receipt("r2", "Banco Nación", "12345", "b2", now))
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		require.NoError(t, repo.Create(ctx, receipt("r3", "Banco Galicia", "12345", "b2", now.Add(time.Second))))

		found, err := repo.FindByBankAndOperation(ctx, "Banco Nación", "12345")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, decimal.RequireFromString("1000.50").Equal(found[0].DepositAmount))

		collide := receipt("r3", "Banco Nación", "12345", "b2", now)
		assert.ErrorIs(t, repo.Update(ctx, collide), domain.ErrDuplicate)

		banks, err := repo.ListBanks(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Banco Galicia", "Banco Nación"}, banks)

		list, err := repo.List(ctx, repository.DepositReceiptFilter{BranchID: "b2"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "r3", list[0].ID)

		missing, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("clients nullable columns", func(t *testing.T) {
		repo := postgres.NewClientRepository(pool)
		c := &entity.Client{
			ID: "c1", FirstName: "Ana", LastName: "Núñez", Mobile: "11",
			BranchID: "b1", Status: entity.ClientPending, InterestType: "oro", CreatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, c))
		got, err := repo.GetByID(ctx, "c1")
		require.NoError(t, err)
		assert.Nil(t, got.InvestmentAmount)
		assert.Nil(t, got.UpdatedAt)

		amount := decimal.NewFromInt(5000)
		c.InvestmentAmount = &amount
		c.Status = entity.ClientContacted
		c.UpdatedAt = &now
		require.NoError(t, repo.Update(ctx, c))

		list, err := repo.List(ctx, repository.ClientFilter{Status: entity.ClientContacted})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, amount.Equal(*list[0].InvestmentAmount))

		counts, err := postgres.NewAnalyticsRepository(pool).CountClientsByStatus(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, map[entity.ClientStatus]int{entity.ClientContacted: 1}, counts)
	})

	t.Run("analytics by currency", func(t *testing.T) {
		totals, err := postgres.NewAnalyticsRepository(pool).SumReceiptsByCurrency(ctx, "", time.Time{})
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, entity.CurrencyARS, totals[0].Currency)
		assert.Equal(t, 2, totals[0].Count)
		assert.True(t, decimal.RequireFromString("2001.00").Equal(totals[0].Total))
	})

	t.Run("account transaction rolls back", func(t *testing.T) {
		tx := postgres.NewTxRunner(pool)
		users := postgres.NewUserRepository(pool)
		creds := postgres.NewCredentialRepository(pool)
		require.NoError(t, users.Create(ctx, &entity.User{ID: "u0", Email: "ana@oro.com", Username: "ana", Role: entity.RoleAdmin, CreatedAt: now}))

		err := tx.RunAccount(ctx, func(c repository.CredentialRepository, u repository.UserRepository) error {
			if err := c.Create(ctx, &entity.Credential{SubjectID: "s1", Email: "ANA@oro.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}); err != nil {
				return err
			}
			return u.Create(ctx, &entity.User{ID: "s1", Email: "ANA@oro.com", Username: "ana2", Role: entity.RoleUser, CreatedAt: now})
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

		cred, err := creds.GetBySubject(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, cred)

		byEmail, err := users.GetByEmail(ctx, "ANA@ORO.COM")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, "u0", byEmail.ID)
	})
}
