package entity

// GarageID identificador de un taller (sede) del tenant.
type GarageID string

// Garage representa un taller donde se almacena inventario (multi-sede).
type Garage struct {
	ID       GarageID
	TenantID string
	Name     string
	Active   bool
}
