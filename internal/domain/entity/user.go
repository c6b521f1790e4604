package entity

import "time"

// User perfil de aplicación. ID coincide con el SubjectID de la credencial.
// USER debería tener BranchID (invariante blanda, no se rechaza).
type User struct {
	ID        string
	Email     string
	Username  string
	Role      Role
	BranchID  string // vacío = sin sucursal
	CreatedAt time.Time
}

// HasBranch informa si el usuario tiene sucursal asignada.
func (u *User) HasBranch() bool {
	return u != nil && u.BranchID != ""
}
