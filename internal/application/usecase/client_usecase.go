package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/domain/search"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// Campos de orden del listado de clientes.
const (
	ClientSortLastName         = "last_name"
	ClientSortCreatedAt        = "created_at"
	ClientSortInvestmentAmount = "investment_amount"
)

// ClientUseCase casos de uso de clientes con visibilidad por sucursal.
type ClientUseCase struct {
	repo    repository.ClientRepository
	metrics ports.Recorder
	log     *logger.Logger
	now     func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, metrics ports.Recorder, log *logger.Logger) *ClientUseCase {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ClientUseCase{repo: repo, metrics: metrics, log: log.Named("clients"), now: time.Now}
}

// Create alta de cliente. Para USER la sucursal queda forzada a la propia.
func (uc *ClientUseCase) Create(ctx context.Context, p access.Principal, in dto.ClientRequest) (*dto.ClientResponse, error) {
	status := entity.ClientStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.ClientPending
	}
	client := &entity.Client{
		ID:               uuid.New().String(),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Mobile:           strings.TrimSpace(in.Mobile),
		Landline:         strings.TrimSpace(in.Landline),
		Address:          strings.TrimSpace(in.Address),
		Email:            strings.TrimSpace(in.Email),
		InterestType:     strings.TrimSpace(in.InterestType),
		InvestmentAmount: in.InvestmentAmount,
		BranchID:         p.ClientBranch(strings.TrimSpace(in.BranchID)),
		Status:           status,
		CreatedBy:        p.UserID,
		CreatedAt:        uc.now().UTC(),
	}
	if err := validation.ValidateClient(client); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("clients: crear: %w", err)
	}
	uc.metrics.ClientCreated()
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente dentro del alcance; fuera de él responde ErrNotFound.
func (uc *ClientUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ClientResponse, error) {
	client, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List clientes visibles, filtrados por estado y término de búsqueda.
// Por defecto más recientes primero.
func (uc *ClientUseCase) List(ctx context.Context, p access.Principal, q dto.ClientQuery) (*dto.ClientListResponse, error) {
	scope := p.ScopeFor(strings.TrimSpace(q.BranchID))
	if scope.Empty() {
		return &dto.ClientListResponse{Items: []dto.ClientResponse{}}, nil
	}
	filter := repository.ClientFilter{BranchID: scope.Filter()}
	if q.Status != "" {
		st, err := entity.ParseClientStatus(q.Status)
		if err != nil {
			return nil, domain.NewValidationError("status", validation.MsgStatusInvalid)
		}
		filter.Status = st
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("clients: listar: %w", err)
	}

	m := search.NewMatcher(q.Q)
	items := make([]dto.ClientResponse, 0, len(list))
	kept := make([]*entity.Client, 0, len(list))
	for _, c := range list {
		if m.Match(c.FirstName, c.LastName, c.Mobile, c.Email) {
			kept = append(kept, c)
		}
	}
	sortClients(kept, q.Sort, q.Order)
	for _, c := range kept {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Total: len(items)}, nil
}

func sortClients(list []*entity.Client, field, order string) {
	desc := strings.EqualFold(order, "desc")
	var less func(a, b *entity.Client) bool
	switch field {
	case ClientSortLastName:
		less = func(a, b *entity.Client) bool { return search.Fold(a.LastName) < search.Fold(b.LastName) }
	case ClientSortCreatedAt:
		less = func(a, b *entity.Client) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case ClientSortInvestmentAmount:
		less = func(a, b *entity.Client) bool {
			// sin monto al final en orden ascendente
			if a.InvestmentAmount == nil || b.InvestmentAmount == nil {
				return a.InvestmentAmount != nil && b.InvestmentAmount == nil
			}
			return a.InvestmentAmount.LessThan(*b.InvestmentAmount)
		}
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

// Update merge parcial; sella updated_at. USER no puede mover el cliente de sucursal.
func (uc *ClientUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	setTrimmed(&client.FirstName, in.FirstName)
	setTrimmed(&client.LastName, in.LastName)
	setTrimmed(&client.Mobile, in.Mobile)
	setTrimmed(&client.Landline, in.Landline)
	setTrimmed(&client.Address, in.Address)
	setTrimmed(&client.Email, in.Email)
	setTrimmed(&client.InterestType, in.InterestType)
	if in.InvestmentAmount != nil {
		client.InvestmentAmount = in.InvestmentAmount
	}
	if in.BranchID != nil && p.Role.CanChooseBranch() {
		client.BranchID = strings.TrimSpace(*in.BranchID)
	}
	if in.Status != nil {
		client.Status = entity.ClientStatus(strings.TrimSpace(*in.Status))
	}
	return uc.save(ctx, client)
}

// UpdateStatus cambio rápido de estado desde el listado.
func (uc *ClientUseCase) UpdateStatus(ctx context.Context, p access.Principal, id string, status string) (*dto.ClientResponse, error) {
	st, err := entity.ParseClientStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, domain.NewValidationError("status", validation.MsgStatusInvalid)
	}
	client, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	client.Status = st
	return uc.save(ctx, client)
}

// Delete baja definitiva de un cliente visible.
func (uc *ClientUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if _, err := uc.load(ctx, p, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("clients: eliminar: %w", err)
	}
	return nil
}

func (uc *ClientUseCase) save(ctx context.Context, client *entity.Client) (*dto.ClientResponse, error) {
	if err := validation.ValidateClient(client); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	client.UpdatedAt = &now
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("clients: actualizar: %w", err)
	}
	return toClientResponse(client), nil
}

func (uc *ClientUseCase) load(ctx context.Context, p access.Principal, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("clients: obtener: %w", err)
	}
	if client == nil || !p.Scope().Contains(client.BranchID) {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Mobile:           c.Mobile,
		Landline:         c.Landline,
		Address:          c.Address,
		Email:            c.Email,
		InterestType:     c.InterestType,
		InvestmentAmount: c.InvestmentAmount,
		BranchID:         c.BranchID,
		Status:           string(c.Status),
		CreatedBy:        c.CreatedBy,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
