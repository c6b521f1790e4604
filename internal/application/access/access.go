// Package access resuelve qué registros puede ver y modificar la sesión actual.
package access

import (
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// Principal identidad de la sesión que los handlers pasan a los casos de uso.
type Principal struct {
	UserID   string
	Role     entity.Role
	BranchID string
}

// PrincipalOf arma el Principal desde el perfil cargado.
func PrincipalOf(u *entity.User) Principal {
	return Principal{UserID: u.ID, Role: u.Role, BranchID: u.BranchID}
}

// Scope alcance de lectura por sucursal.
type Scope struct {
	All      bool   // MASTER: sin filtro de sucursal
	BranchID string // sucursal visible cuando All es false
}

// Empty: el usuario no tiene sucursal y no ve todas; la lista es vacía sin consultar el store.
func (s Scope) Empty() bool {
	return !s.All && s.BranchID == ""
}

// Filter devuelve el branchID a usar como filtro ("" = todas).
func (s Scope) Filter() string {
	if s.All {
		return ""
	}
	return s.BranchID
}

// Contains informa si un registro de la sucursal dada está dentro del alcance.
func (s Scope) Contains(branchID string) bool {
	if s.All {
		return true
	}
	return s.BranchID != "" && s.BranchID == branchID
}

// ScopeFor calcula el alcance de lectura. MASTER puede acotar a una sucursal con requested;
// para los demás roles requested se ignora.
func (p Principal) ScopeFor(requested string) Scope {
	if p.Role.SeesAllBranches() {
		if requested != "" {
			return Scope{BranchID: requested}
		}
		return Scope{All: true}
	}
	return Scope{BranchID: p.BranchID}
}

// Scope alcance sin sucursal solicitada.
func (p Principal) Scope() Scope {
	return p.ScopeFor("")
}

// ClientBranch sucursal efectiva al guardar un cliente: USER queda forzado a la suya;
// ADMIN y MASTER eligen otra, y sin elección queda la propia.
func (p Principal) ClientBranch(requested string) string {
	if p.Role.CanChooseBranch() && requested != "" {
		return requested
	}
	return p.BranchID
}

// ReceiptBranch sucursal con la que se sella una boleta nueva: la del usuario,
// salvo MASTER que puede indicar otra.
func (p Principal) ReceiptBranch(requested string) string {
	if p.Role.SeesAllBranches() && requested != "" {
		return requested
	}
	return p.BranchID
}

// RequireManageBranches ErrForbidden si el rol no administra sucursales.
func (p Principal) RequireManageBranches() error {
	if !p.Role.CanManageBranches() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireManageUsers ErrForbidden si el rol no administra usuarios.
func (p Principal) RequireManageUsers() error {
	if !p.Role.CanManageUsers() {
		return domain.ErrForbidden
	}
	return nil
}
