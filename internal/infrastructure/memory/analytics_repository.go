package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard calculados sobre el store.
type AnalyticsRepo struct {
	s *Store
}

// NewAnalyticsRepository construye el repo.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (r *AnalyticsRepo) CountClientsByStatus(_ context.Context, branchID string) (map[entity.ClientStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[entity.ClientStatus]int)
	for _, c := range r.s.clients {
		if branchID != "" && c.BranchID != branchID {
			continue
		}
		out[c.Status]++
	}
	return out, nil
}

func (r *AnalyticsRepo) SumReceiptsByCurrency(_ context.Context, branchID string, since time.Time) ([]repository.CurrencyTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	idx := make(map[entity.Currency]int)
	var out []repository.CurrencyTotal
	for _, d := range r.s.receipts {
		if branchID != "" && d.BranchID != branchID {
			continue
		}
		if !since.IsZero() && d.CreatedAt.Before(since) {
			continue
		}
		i, ok := idx[d.DepositCurrency]
		if !ok {
			i = len(out)
			idx[d.DepositCurrency] = i
			out = append(out, repository.CurrencyTotal{Currency: d.DepositCurrency})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(d.DepositAmount)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}
