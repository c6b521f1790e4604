package entity

import "time"

// Branch sucursal (oficina física). Su baja no se propaga a usuarios, clientes ni boletas.
type Branch struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
