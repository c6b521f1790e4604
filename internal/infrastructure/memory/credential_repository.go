package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo credenciales en memoria, indexadas por subject id.
type CredentialRepo struct {
	s    *Store
	undo *undoLog // solo dentro de TxRunner
}

// NewCredentialRepository construye el repo.
func NewCredentialRepository(s *Store) *CredentialRepo { return &CredentialRepo{s: s} }

func (r *CredentialRepo) Create(_ context.Context, c *entity.Credential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.creds {
		if strings.EqualFold(existing.Email, c.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.undo.cred(r.s, c.SubjectID)
	r.s.creds[c.SubjectID] = *c
	r.s.touch(c.SubjectID)
	return nil
}

func (r *CredentialRepo) GetByEmail(_ context.Context, email string) (*entity.Credential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.creds {
		if strings.EqualFold(c.Email, email) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CredentialRepo) GetBySubject(_ context.Context, subjectID string) (*entity.Credential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.creds[subjectID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CredentialRepo) UpdatePassword(_ context.Context, subjectID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creds[subjectID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.undo.cred(r.s, subjectID)
	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now().UTC()
	r.s.creds[subjectID] = c
	return nil
}

func (r *CredentialRepo) Delete(_ context.Context, subjectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.undo.cred(r.s, subjectID)
	delete(r.s.creds, subjectID)
	return nil
}
