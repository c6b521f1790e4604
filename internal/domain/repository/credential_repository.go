package repository

import (
	"context"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// CredentialRepository puerto del proveedor de identidad.
// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
type CredentialRepository interface {
	Create(ctx context.Context, cred *entity.Credential) error
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	GetBySubject(ctx context.Context, subjectID string) (*entity.Credential, error)
	UpdatePassword(ctx context.Context, subjectID, passwordHash string) error
	Delete(ctx context.Context, subjectID string) error
}
