package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name string `json:"name"`
}

// UpdateBranchRequest entrada para renombrar una sucursal.
type UpdateBranchRequest struct {
	Name *string `json:"name"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchListResponse lista de sucursales ordenada por nombre.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Total int              `json:"total"`
}
