package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/auth"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// AccountIssuer alta de credenciales del proveedor de identidad (auth.AuthUseCase).
type AccountIssuer interface {
	CreateAccount(ctx context.Context, credRepo repository.CredentialRepository, email, password string) (string, error)
}

// UserUseCase administración de usuarios. Todas las operaciones requieren MASTER.
type UserUseCase struct {
	repo     repository.UserRepository
	tx       ports.AccountTxRunner
	accounts AccountIssuer
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, tx ports.AccountTxRunner, accounts AccountIssuer, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, tx: tx, accounts: accounts, log: log.Named("users")}
}

// Create da de alta la credencial y el perfil en una única transacción.
// El id del perfil es el subject id de la credencial. La sesión del MASTER no cambia.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := p.RequireManageUsers(); err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Username:  strings.TrimSpace(in.Username),
		Role:      entity.Role(in.Role),
		BranchID:  strings.TrimSpace(in.BranchID),
		CreatedAt: time.Now().UTC(),
	}
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}

	err := uc.tx.RunAccount(ctx, func(credRepo repository.CredentialRepository, userRepo repository.UserRepository) error {
		subjectID, err := uc.accounts.CreateAccount(ctx, credRepo, user.Email, in.Password)
		if err != nil {
			return err
		}
		user.ID = subjectID
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("users: crear: %w", err)
	}
	uc.warnWithoutBranch(user)
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Str("by", p.UserID).Msg("usuario creado")
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.UserResponse, error) {
	if err := p.RequireManageUsers(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("users: obtener: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// List lista usuarios ordenados por username; branchID acota a una sucursal.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal, branchID string) (*dto.UserListResponse, error) {
	if err := p.RequireManageUsers(); err != nil {
		return nil, err
	}
	var (
		list []*entity.User
		err  error
	)
	if branchID != "" {
		list, err = uc.repo.ListByBranch(ctx, branchID)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("users: listar: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Total: len(items)}, nil
}

// Update actualización parcial de username, rol y sucursal. El email es de la credencial y no se edita.
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := p.RequireManageUsers(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("users: obtener: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Role != nil {
		user.Role = entity.Role(*in.Role)
	}
	if in.BranchID != nil {
		user.BranchID = strings.TrimSpace(*in.BranchID)
	}
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("users: actualizar: %w", err)
	}
	uc.warnWithoutBranch(user)
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Delete elimina perfil y credencial en una transacción. Un MASTER no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.RequireManageUsers(); err != nil {
		return err
	}
	if id == p.UserID {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("users: obtener: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.RunAccount(ctx, func(credRepo repository.CredentialRepository, userRepo repository.UserRepository) error {
		if err := userRepo.Delete(ctx, id); err != nil {
			return err
		}
		return credRepo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("users: eliminar: %w", err)
	}
	uc.log.Info().Str("user_id", id).Str("by", p.UserID).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) warnWithoutBranch(u *entity.User) {
	if u.Role == entity.RoleUser && !u.HasBranch() {
		uc.log.Warn().Str("user_id", u.ID).Msg("usuario con rol USER sin sucursal asignada")
	}
}

// isDomainError errores que el handler traduce por sí mismo y no se envuelven.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput, domain.ErrInvalidEmail, domain.ErrWeakPassword,
		domain.ErrEmailAlreadyExists, domain.ErrDuplicate, domain.ErrNotFound,
		domain.ErrForbidden, domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
