package usecase_test

import (
	"testing"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientReq(first, last, branch string) dto.ClientRequest {
	return dto.ClientRequest{
		FirstName: first, LastName: last, Mobile: "1155550000",
		InterestType: "Lingotes", BranchID: branch,
	}
}

func TestClient_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(ctx, adminB1, clientReq("Ana", "Pérez", "b1"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", c.Status)
	assert.Equal(t, adminB1.UserID, c.CreatedBy)
	assert.Equal(t, "b1", c.BranchID)
	assert.Nil(t, c.UpdatedAt)
}

func TestClient_RequiresInterestOrAmount(t *testing.T) {
	f := newFixture(t)
	req := clientReq("Ana", "Pérez", "b1")
	req.InterestType = ""
	_, err := f.clients.Create(ctx, master, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	fields := domain.ValidationErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, validation.MsgInterestRequired, fields[0].Message)

	list, err := f.clients.List(ctx, master, dto.ClientQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	amt := decimal.NewFromInt(25000)
	req.InvestmentAmount = &amt
	_, err = f.clients.Create(ctx, master, req)
	assert.NoError(t, err)
}

// USER queda fijado a su sucursal aunque envíe otra.
func TestClient_UserBranchIsForced(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(ctx, userB1, clientReq("Ana", "Pérez", "b2"))
	require.NoError(t, err)
	assert.Equal(t, "b1", c.BranchID)

	other := "b2"
	upd, err := f.clients.Update(ctx, userB1, c.ID, dto.UpdateClientRequest{BranchID: &other})
	require.NoError(t, err)
	assert.Equal(t, "b1", upd.BranchID)

	moved, err := f.clients.Update(ctx, adminB1, c.ID, dto.UpdateClientRequest{BranchID: &other})
	require.NoError(t, err)
	assert.Equal(t, "b2", moved.BranchID)

	_, err = f.clients.Create(ctx, orphan, clientReq("Sin", "Sucursal", "b1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_AdminSinSucursalUsaLaPropia(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(ctx, adminB1, clientReq("Ana", "Pérez", ""))
	require.NoError(t, err)
	assert.Equal(t, "b1", c.BranchID)

	list, err := f.clients.List(ctx, adminB1, dto.ClientQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestClient_ListScopedByRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.Create(ctx, master, clientReq("Ana", "Uno", "b1"))
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, master, clientReq("Beto", "Dos", "b2"))
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, master, clientReq("Caro", "Tres", "b1"))
	require.NoError(t, err)

	b1, err := f.clients.List(ctx, userB1, dto.ClientQuery{})
	require.NoError(t, err)
	require.Len(t, b1.Items, 2)
	for _, c := range b1.Items {
		assert.Equal(t, "b1", c.BranchID)
	}

	// branch_id en la query no amplía el alcance de un USER
	forced, err := f.clients.List(ctx, userB1, dto.ClientQuery{BranchID: "b2"})
	require.NoError(t, err)
	assert.Len(t, forced.Items, 2)

	all, err := f.clients.List(ctx, master, dto.ClientQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	onlyB2, err := f.clients.List(ctx, master, dto.ClientQuery{BranchID: "b2"})
	require.NoError(t, err)
	require.Len(t, onlyB2.Items, 1)
	assert.Equal(t, "Beto", onlyB2.Items[0].FirstName)

	none, err := f.clients.List(ctx, orphan, dto.ClientQuery{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestClient_OutOfScopeIsNotFound(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(ctx, master, clientReq("Ana", "Pérez", "b1"))
	require.NoError(t, err)

	_, err = f.clients.GetByID(ctx, userB2, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.clients.Delete(ctx, userB2, c.ID), domain.ErrNotFound)

	got, err := f.clients.GetByID(ctx, userB1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestClient_SearchStatusAndSort(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	i := 0
	f.clients = withClock(f, func() time.Time { i++; return base.Add(time.Duration(i) * time.Minute) })

	a, err := f.clients.Create(ctx, master, clientReq("José", "Núñez", "b1"))
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, master, clientReq("Ana", "Álvarez", "b1"))
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, master, clientReq("Luis", "Zapata", "b1"))
	require.NoError(t, err)

	found, err := f.clients.List(ctx, master, dto.ClientQuery{Q: "nunez"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, a.ID, found.Items[0].ID)

	// por defecto, más recientes primero
	def, err := f.clients.List(ctx, master, dto.ClientQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Luis", def.Items[0].FirstName)

	byLast, err := f.clients.List(ctx, master, dto.ClientQuery{Sort: "last_name", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "Álvarez", byLast.Items[0].LastName)
	assert.Equal(t, "Zapata", byLast.Items[2].LastName)

	_, err = f.clients.UpdateStatus(ctx, master, a.ID, "CONTACTED")
	require.NoError(t, err)
	contacted, err := f.clients.List(ctx, master, dto.ClientQuery{Status: "CONTACTED"})
	require.NoError(t, err)
	require.Len(t, contacted.Items, 1)
	assert.Equal(t, a.ID, contacted.Items[0].ID)
	require.NotNil(t, contacted.Items[0].UpdatedAt)

	_, err = f.clients.List(ctx, master, dto.ClientQuery{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.clients.UpdateStatus(ctx, master, a.ID, "ARCHIVED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_UpdateStampsUpdatedAt(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(ctx, adminB1, clientReq("Ana", "Pérez", "b1"))
	require.NoError(t, err)

	mobile := "1166660000"
	upd, err := f.clients.Update(ctx, adminB1, c.ID, dto.UpdateClientRequest{Mobile: &mobile})
	require.NoError(t, err)
	assert.Equal(t, "1166660000", upd.Mobile)
	assert.Equal(t, "Ana", upd.FirstName)
	assert.Equal(t, c.CreatedAt, upd.CreatedAt)
	require.NotNil(t, upd.UpdatedAt)

	empty := ""
	_, err = f.clients.Update(ctx, adminB1, c.ID, dto.UpdateClientRequest{FirstName: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
