package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

var clientColumns = []string{
	"id", "first_name", "last_name", "mobile", "landline", "address", "email",
	"interest_type", "investment_amount", "branch_id", "status", "created_by",
	"created_at", "updated_at",
}

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgxScanner) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Mobile, &c.Landline, &c.Address, &c.Email,
		&c.InterestType, &c.InvestmentAmount, &c.BranchID, &c.Status, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	sqlQuery, args, err := psql.Insert("clients").Columns(clientColumns...).Values(
		c.ID, c.FirstName, c.LastName, c.Mobile, c.Landline, c.Address, c.Email,
		c.InterestType, c.InvestmentAmount, c.BranchID, c.Status, c.CreatedBy,
		c.CreatedAt, c.UpdatedAt,
	).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	sqlQuery, args, err := psql.Select(clientColumns...).From("clients").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanClient(r.q.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List clientes filtrados por sucursal y estado, más recientes primero.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	stmt := psql.Select(clientColumns...).From("clients").OrderBy("created_at DESC", "id")
	if f.BranchID != "" {
		stmt = stmt.Where(sq.Eq{"branch_id": f.BranchID})
	}
	if f.Status != "" {
		stmt = stmt.Where(sq.Eq{"status": f.Status})
	}
	list, err := queryAll(ctx, r.q, stmt, scanClient)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return list, nil
}

// Update reemplaza los campos editables. created_by y created_at no cambian.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	sqlQuery, args, err := psql.Update("clients").SetMap(map[string]any{
		"first_name":        c.FirstName,
		"last_name":         c.LastName,
		"mobile":            c.Mobile,
		"landline":          c.Landline,
		"address":           c.Address,
		"email":             c.Email,
		"interest_type":     c.InterestType,
		"investment_amount": c.InvestmentAmount,
		"branch_id":         c.BranchID,
		"status":            c.Status,
		"updated_at":        c.UpdatedAt,
	}).Where(sq.Eq{"id": c.ID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
