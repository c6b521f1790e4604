package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión + perfil del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest nueva contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MeResponse perfil y capacidades de la sesión actual (el front arma sus vistas con esto).
type MeResponse struct {
	User              UserResponse `json:"user"`
	SeesAllBranches   bool         `json:"sees_all_branches"`
	CanManageBranches bool         `json:"can_manage_branches"`
	CanManageUsers    bool         `json:"can_manage_users"`
	CanChooseBranch   bool         `json:"can_choose_branch"`
}
