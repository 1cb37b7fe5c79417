package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega. domain.ErrDuplicate si el código ya existe.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Code, w.Name, w.Location, w.IsActive, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID, o nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, code, name, location, is_active, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Code, &w.Name, &w.Location, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Location, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas activas con paginación.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, code, name, location, is_active, created_at, updated_at
		FROM warehouses WHERE is_active ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Location, &w.IsActive,
			&w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Deactivate desactiva lógicamente una bodega.
func (r *WarehouseRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateZone persiste una zona de almacenamiento.
func (r *WarehouseRepo) CreateZone(ctx context.Context, z *entity.StorageZone) error {
	query := `
		INSERT INTO storage_zones (id, warehouse_id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		z.ID, z.WarehouseID, z.Name, z.IsActive, z.CreatedAt, z.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage zone: %w", err)
	}
	return nil
}

// GetZoneByID obtiene una zona por ID, o nil si no existe.
func (r *WarehouseRepo) GetZoneByID(ctx context.Context, id string) (*entity.StorageZone, error) {
	query := `
		SELECT id, warehouse_id, name, is_active, created_at, updated_at
		FROM storage_zones WHERE id = $1`
	var z entity.StorageZone
	err := r.q.QueryRow(ctx, query, id).Scan(
		&z.ID, &z.WarehouseID, &z.Name, &z.IsActive, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage zone: %w", err)
	}
	return &z, nil
}

// ListZones lista las zonas activas de una bodega.
func (r *WarehouseRepo) ListZones(ctx context.Context, warehouseID string) ([]*entity.StorageZone, error) {
	query := `
		SELECT id, warehouse_id, name, is_active, created_at, updated_at
		FROM storage_zones WHERE warehouse_id = $1 AND is_active ORDER BY name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list storage zones: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageZone
	for rows.Next() {
		var z entity.StorageZone
		if err := rows.Scan(&z.ID, &z.WarehouseID, &z.Name, &z.IsActive,
			&z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage zone: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}
