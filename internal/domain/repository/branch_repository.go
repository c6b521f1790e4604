package repository

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
// GetByID devuelve (nil, nil) si no existe.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context) ([]*entity.Branch, error) // ordenado por nombre
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id string) error
}
