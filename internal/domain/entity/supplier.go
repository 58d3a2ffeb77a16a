package entity

import "time"

// Supplier representa un proveedor del kiosco. Se desactiva en lugar de
// borrarse: los movimientos de entrada lo referencian como histórico.
type Supplier struct {
	ID        string
	UserID    string
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
