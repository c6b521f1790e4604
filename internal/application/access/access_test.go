package access_test

import (
	"testing"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	master := access.Principal{UserID: "m", Role: entity.RoleMaster}
	admin := access.Principal{UserID: "a", Role: entity.RoleAdmin, BranchID: "b1"}
	orphan := access.Principal{UserID: "u", Role: entity.RoleUser}

	assert.True(t, master.Scope().All)
	assert.Equal(t, "", master.Scope().Filter())
	assert.Equal(t, access.Scope{BranchID: "b2"}, master.ScopeFor("b2"))

	s := admin.ScopeFor("b2")
	assert.Equal(t, "b1", s.Filter())
	assert.True(t, s.Contains("b1"))
	assert.False(t, s.Contains("b2"))

	assert.True(t, orphan.Scope().Empty())
	assert.False(t, orphan.Scope().Contains(""))
}

func TestBranchStamping(t *testing.T) {
	user := access.Principal{Role: entity.RoleUser, BranchID: "b1"}
	admin := access.Principal{Role: entity.RoleAdmin, BranchID: "b1"}
	master := access.Principal{Role: entity.RoleMaster}

	assert.Equal(t, "b1", user.ClientBranch("b9"))
	assert.Equal(t, "b9", admin.ClientBranch("b9"))
	assert.Equal(t, "b1", admin.ClientBranch(""))
	assert.Equal(t, "", master.ClientBranch(""))

	assert.Equal(t, "b1", admin.ReceiptBranch("b9"))
	assert.Equal(t, "b9", master.ReceiptBranch("b9"))
	assert.Equal(t, "", master.ReceiptBranch(""))
}

func TestRequire(t *testing.T) {
	admin := access.Principal{Role: entity.RoleAdmin}
	assert.NoError(t, admin.RequireManageBranches())
	assert.ErrorIs(t, admin.RequireManageUsers(), domain.ErrForbidden)
	assert.ErrorIs(t, access.Principal{Role: entity.RoleUser}.RequireManageBranches(), domain.ErrForbidden)
}
