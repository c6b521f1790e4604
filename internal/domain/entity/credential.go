package entity

import "time"

// Credential registro del proveedor de identidad (email + hash bcrypt).
// Nunca se serializa hacia afuera.
type Credential struct {
	SubjectID    string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
