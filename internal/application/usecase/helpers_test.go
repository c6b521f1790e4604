package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/auth"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/memory"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/session"
)

var (
	master  = access.Principal{UserID: "master-1", Role: entity.RoleMaster}
	adminB1 = access.Principal{UserID: "admin-1", Role: entity.RoleAdmin, BranchID: "b1"}
	userB1  = access.Principal{UserID: "user-1", Role: entity.RoleUser, BranchID: "b1"}
	userB2  = access.Principal{UserID: "user-2", Role: entity.RoleUser, BranchID: "b2"}
	orphan  = access.Principal{UserID: "user-3", Role: entity.RoleUser}
)

type fixture struct {
	store    *memory.Store
	branches *usecase.BranchUseCase
	users    *usecase.UserUseCase
	clients  *usecase.ClientUseCase
	receipts *usecase.DepositReceiptUseCase
	auth     *auth.AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	sessions := session.NewMemory()
	t.Cleanup(func() { _ = sessions.Close() })

	authUC := auth.NewAuthUseCase(
		memory.NewCredentialRepository(store),
		memory.NewUserRepository(store),
		sessions, nil,
		auth.Config{Secret: "test-secret", ExpMinutes: 60, Issuer: "test", MaxLoginAttempts: 3, LoginWindow: time.Minute},
		nil,
	)
	return &fixture{
		store:    store,
		branches: usecase.NewBranchUseCase(memory.NewBranchRepository(store), nil),
		users:    usecase.NewUserUseCase(memory.NewUserRepository(store), memory.NewTxRunner(store), authUC, nil),
		clients:  usecase.NewClientUseCase(memory.NewClientRepository(store), nil, nil),
		receipts: usecase.NewDepositReceiptUseCase(
			memory.NewDepositReceiptRepository(store),
			memory.NewBranchRepository(store),
			memory.NewUserRepository(store),
			nil, nil, nil,
		),
		auth: authUC,
	}
}

var ctx = context.Background()

func withClock(f *fixture, now func() time.Time) *usecase.ClientUseCase {
	uc := usecase.NewClientUseCase(memory.NewClientRepository(f.store), nil, nil)
	usecase.SetClock(uc, now)
	return uc
}
