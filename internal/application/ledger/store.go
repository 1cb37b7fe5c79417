package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
	"github.com/jhoicas/molino-inventario/pkg/logger"
)

// QueryCache cachea respuestas de reportes de solo lectura con TTL corto.
// nil = sin cache (las consultas van directo a la base).
type QueryCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Claves y TTL del cache de reportes. Los reportes toleran unos segundos de
// desfase; las operaciones de mutación nunca leen del cache.
const (
	cacheKeyValuation      = "ledger:valuation"
	cacheKeyTotalValuation = "ledger:valuation:total"
	reportCacheTTL         = 30 * time.Second
)

// Store es el Ledger Store: dueño del registro canónico de existencias.
// Expone lecturas, el alta explícita de asientos y las consultas de reportes
// (stock bajo, sobre-stock, reorden, valorización). Las mutaciones de stock van
// por TxStore dentro de una transacción.
type Store struct {
	repo  repository.LedgerRepository
	cache QueryCache
	log   *logger.Logger
}

// NewStore construye el Ledger Store. cache puede ser nil.
func NewStore(repo repository.LedgerRepository, cache QueryCache, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{repo: repo, cache: cache, log: log}
}

// Get devuelve el asiento para (producto, bodega, zona) o ErrLedgerNotFound.
func (s *Store) Get(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	e, err := s.repo.Get(ctx, productID, warehouseID, zoneID)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.IsActive {
		return nil, domain.ErrLedgerNotFound
	}
	return e, nil
}

// Create da de alta un asiento de forma explícita (la otra vía es el primer
// movimiento IN del producto). Rechaza duplicados sobre la clave única.
func (s *Store) Create(ctx context.Context, e *entity.LedgerEntry) (string, error) {
	if e.ProductID == "" || e.WarehouseID == "" {
		return "", domain.ErrInvalidInput
	}
	existing, err := s.repo.Get(ctx, e.ProductID, e.WarehouseID, e.ZoneID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrDuplicate
	}
	if err := NewTxStore(s.repo).CreateEntry(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

// Deactivate marca un asiento como inactivo (borrado lógico, nunca físico).
func (s *Store) Deactivate(ctx context.Context, productID, warehouseID, zoneID string) error {
	if _, err := s.Get(ctx, productID, warehouseID, zoneID); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, productID, warehouseID, zoneID)
}

// ListActive lista los asientos activos, opcionalmente filtrados por bodega.
func (s *Store) ListActive(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	return s.repo.ListActive(ctx, warehouseID, limit, offset)
}

// ListLowStock devuelve los asientos por debajo de su nivel mínimo.
func (s *Store) ListLowStock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	return s.repo.ListLowStock(ctx, warehouseID)
}

// ListOverstock devuelve los asientos en o sobre su nivel máximo.
func (s *Store) ListOverstock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	return s.repo.ListOverstock(ctx, warehouseID)
}

// ListReorder devuelve los asientos entre el mínimo y el punto de reorden.
func (s *Store) ListReorder(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	return s.repo.ListReorder(ctx, warehouseID)
}

// ValuationByWarehouse devuelve la valorización agregada por bodega.
// Pasa por el cache de reportes si está configurado; el cache es best-effort.
func (s *Store) ValuationByWarehouse(ctx context.Context) ([]repository.WarehouseValuation, error) {
	if s.cache != nil {
		var cached []repository.WarehouseValuation
		if ok, err := s.cache.Get(ctx, cacheKeyValuation, &cached); err == nil && ok {
			return cached, nil
		} else if err != nil {
			s.log.Debug().Err(err).Msg("cache de valorización no disponible")
		}
	}
	result, err := s.repo.ValuationByWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyValuation, result, reportCacheTTL); err != nil {
			s.log.Debug().Err(err).Msg("no se pudo escribir cache de valorización")
		}
	}
	return result, nil
}

// TotalValuation devuelve la valorización global del inventario.
func (s *Store) TotalValuation(ctx context.Context) (decimal.Decimal, error) {
	if s.cache != nil {
		var cached decimal.Decimal
		if ok, err := s.cache.Get(ctx, cacheKeyTotalValuation, &cached); err == nil && ok {
			return cached, nil
		}
	}
	total, err := s.repo.TotalValuation(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyTotalValuation, total, reportCacheTTL); err != nil {
			s.log.Debug().Err(err).Msg("no se pudo escribir cache de valorización total")
		}
	}
	return total, nil
}
