package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo perfiles de usuario en memoria.
type UserRepo struct {
	s    *Store
	undo *undoLog // solo dentro de TxRunner
}

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.undo.user(r.s, u.ID)
	r.s.users[u.ID] = *u
	r.s.touch(u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.list(func(*entity.User) bool { return true }), nil
}

func (r *UserRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.User, error) {
	return r.list(func(u *entity.User) bool { return u.BranchID == branchID }), nil
}

func (r *UserRepo) list(keep func(*entity.User) bool) []*entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		if keep(&u) {
			list = append(list, &u)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		r.undo.user(r.s, u.ID)
		r.s.users[u.ID] = *u
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.undo.user(r.s, id)
	delete(r.s.users, id)
	return nil
}
