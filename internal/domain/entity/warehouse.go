package entity

import "time"

// Warehouse representa una bodega del molino donde se almacena inventario
// (paddy, arroz blanco, subproductos). Code sigue el formato WRHS%04d.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Location  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageZone es una zona de almacenamiento dentro de una bodega (silo, patio, estante).
// Opcional: un asiento del ledger puede existir sin zona.
type StorageZone struct {
	ID          string
	WarehouseID string
	Name        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
