package repository

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para el perfil User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error) // ordenado por username
	ListByBranch(ctx context.Context, branchID string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
