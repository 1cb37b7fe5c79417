package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas y zonas de almacenamiento.
// Master data mínima que el motor necesita para validar llaves foráneas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
	seq  repository.SequenceRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, seq repository.SequenceRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, seq: seq}
}

// Create crea una bodega con código correlativo WRHS%04d.
func (uc *WarehouseUseCase) Create(ctx context.Context, name, location string) (*entity.Warehouse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.seq.Next(ctx, repository.SequenceWarehouses)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      fmt.Sprintf("WRHS%04d", n),
		Name:      name,
		Location:  location,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || !warehouse.IsActive {
		return nil, domain.ErrNotFound
	}
	return warehouse, nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.repo.List(ctx, limit, offset)
}

// Update actualiza nombre y ubicación de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, name, location *string) (*entity.Warehouse, error) {
	warehouse, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		warehouse.Name = *name
	}
	if location != nil {
		warehouse.Location = *location
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Deactivate desactiva lógicamente una bodega.
func (uc *WarehouseUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

// CreateZone crea una zona de almacenamiento dentro de una bodega.
func (uc *WarehouseUseCase) CreateZone(ctx context.Context, warehouseID, name string) (*entity.StorageZone, error) {
	if warehouseID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.GetByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	zone := &entity.StorageZone{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Name:        name,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateZone(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// ListZones lista las zonas de una bodega.
func (uc *WarehouseUseCase) ListZones(ctx context.Context, warehouseID string) ([]*entity.StorageZone, error) {
	return uc.repo.ListZones(ctx, warehouseID)
}
