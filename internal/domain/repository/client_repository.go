package repository

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// ClientFilter filtros de igualdad para el listado de clientes. Campos vacíos no filtran.
type ClientFilter struct {
	BranchID string
	Status   entity.ClientStatus
}

// ClientRepository define el puerto de persistencia para Client.
// List ordena por created_at descendente.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
