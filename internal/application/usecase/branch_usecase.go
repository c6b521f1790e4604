package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
	log  *logger.Logger
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, log *logger.Logger) *BranchUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BranchUseCase{repo: repo, log: log.Named("branches")}
}

// Create crea una nueva sucursal. Solo MASTER y ADMIN.
func (uc *BranchUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := p.RequireManageBranches(); err != nil {
		return nil, err
	}
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := validation.ValidateBranch(branch); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("branches: crear: %w", err)
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal. Visible para cualquier usuario autenticado.
func (uc *BranchUseCase) GetByID(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("branches: obtener: %w", err)
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return toBranchResponse(branch), nil
}

// List devuelve todas las sucursales ordenadas por nombre.
func (uc *BranchUseCase) List(ctx context.Context) (*dto.BranchListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("branches: listar: %w", err)
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{Items: items, Total: len(items)}, nil
}

// Update renombra una sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := p.RequireManageBranches(); err != nil {
		return nil, err
	}
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("branches: obtener: %w", err)
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		branch.Name = strings.TrimSpace(*in.Name)
	}
	if err := validation.ValidateBranch(branch); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, branch); err != nil {
		return nil, fmt.Errorf("branches: actualizar: %w", err)
	}
	return toBranchResponse(branch), nil
}

// Delete elimina la sucursal. Usuarios, clientes y boletas conservan el branch_id.
func (uc *BranchUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.RequireManageBranches(); err != nil {
		return err
	}
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("branches: obtener: %w", err)
	}
	if branch == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("branches: eliminar: %w", err)
	}
	uc.log.Info().Str("branch_id", id).Str("by", p.UserID).Msg("sucursal eliminada")
	return nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}
