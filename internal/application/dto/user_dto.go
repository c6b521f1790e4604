package dto

import "time"

// CreateUserRequest entrada para crear un usuario: credencial + perfil en una sola operación.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"` // MASTER | ADMIN | USER
	BranchID string `json:"branch_id"`
}

// UpdateUserRequest actualización parcial del perfil. BranchID "" desasigna la sucursal.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
	BranchID *string `json:"branch_id"`
}

// UserResponse salida de un usuario (la credencial nunca se expone).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	BranchID  string    `json:"branch_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista de usuarios ordenada por username.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}
