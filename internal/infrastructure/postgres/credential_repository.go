package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo credenciales del proveedor de identidad (pool o tx).
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador.
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

const credentialSelect = `SELECT subject_id, email, password_hash, created_at, updated_at FROM credentials`

func scanCredential(row pgxScanner) (*entity.Credential, error) {
	var c entity.Credential
	if err := row.Scan(&c.SubjectID, &c.Email, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste la credencial.
func (r *CredentialRepo) Create(ctx context.Context, c *entity.Credential) error {
	query := `
		INSERT INTO credentials (subject_id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.SubjectID, c.Email, c.PasswordHash, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// GetByEmail obtiene la credencial por email.
func (r *CredentialRepo) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	c, err := scanCredential(r.q.QueryRow(ctx, credentialSelect+` WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential by email: %w", err)
	}
	return c, nil
}

// GetBySubject obtiene la credencial por subject id.
func (r *CredentialRepo) GetBySubject(ctx context.Context, subjectID string) (*entity.Credential, error) {
	c, err := scanCredential(r.q.QueryRow(ctx, credentialSelect+` WHERE subject_id = $1`, subjectID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return c, nil
}

// UpdatePassword reemplaza el hash. ErrUserNotFound si no existe la credencial.
func (r *CredentialRepo) UpdatePassword(ctx context.Context, subjectID, passwordHash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE credentials SET password_hash = $2, updated_at = $3 WHERE subject_id = $1`,
		subjectID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina la credencial.
func (r *CredentialRepo) Delete(ctx context.Context, subjectID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM credentials WHERE subject_id = $1`, subjectID)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
