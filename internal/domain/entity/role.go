package entity

import "fmt"

// Role rol de un usuario. Conjunto cerrado: MASTER ⊇ ADMIN ⊇ USER.
type Role string

// Roles válidos para User.
const (
	RoleMaster Role = "MASTER"
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
)

// Roles devuelve los roles en orden de capacidad descendente.
func Roles() []Role {
	return []Role{RoleMaster, RoleAdmin, RoleUser}
}

// ParseRole convierte un string en Role; error si no pertenece al conjunto.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("rol inválido: %q", s)
	}
	return r, nil
}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// level devuelve la posición del rol en la jerarquía; panic ante un rol fuera del conjunto.
func (r Role) level() int {
	switch r {
	case RoleMaster:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	}
	panic(fmt.Sprintf("entity: rol desconocido %q", string(r)))
}

// AtLeast informa si r tiene al menos las capacidades de other.
// Un rol inválido nunca alcanza a ninguno.
func (r Role) AtLeast(other Role) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return r.level() >= other.level()
}

// SeesAllBranches: solo MASTER lista clientes y boletas de todas las sucursales.
func (r Role) SeesAllBranches() bool {
	switch r {
	case RoleMaster:
		return true
	case RoleAdmin, RoleUser:
		return false
	}
	return false
}

// CanManageBranches: alta, edición y baja de sucursales.
func (r Role) CanManageBranches() bool {
	switch r {
	case RoleMaster, RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// CanManageUsers: alta, edición, baja y listado completo de usuarios.
func (r Role) CanManageUsers() bool {
	switch r {
	case RoleMaster:
		return true
	case RoleAdmin, RoleUser:
		return false
	}
	return false
}

// CanChooseBranch: el selector de sucursal en formularios de clientes es editable.
func (r Role) CanChooseBranch() bool {
	switch r {
	case RoleMaster, RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}
