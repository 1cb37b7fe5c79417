package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/inventory"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
	"github.com/jhoicas/molino-inventario/pkg/logger"
)

// RecordMovementUseCase registra movimientos de stock (IN/OUT) de forma transaccional
// con bloqueo de fila sobre el asiento del ledger y Commit/Rollback. El módulo de
// producción y el de compras/ventas entran al motor por aquí.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	movRepo       repository.StockMovementRepository // lecturas fuera de transacción
	log           *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *RecordMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		movRepo:       movRepo,
		log:           log,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
// UnitCost es obligatorio para IN; en OUT se ignora y se usa el costo vigente del asiento.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	ZoneID      string
	Type        string // IN | OUT
	Category    string // Production, Sale, Purchase, ...
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	Reference   string
	Notes       string
	UserID      string
}

// RecordMovement valida la entrada, abre una transacción, bloquea el asiento del
// ledger y aplica el efecto del movimiento junto con el insert del evento:
//   - IN sin asiento: crea el asiento con stock = cantidad y costo = costo de entrada.
//   - IN con asiento: suma stock y recalcula el costo promedio ponderado.
//   - OUT: exige asiento existente y disponible suficiente; el costo no cambia.
//
// Devuelve el código correlativo del movimiento (STM%04d).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (string, error) {
	if err := uc.validate(input); err != nil {
		return "", err
	}

	// Bodega: llave foránea de master data, se valida existencia antes de escribir.
	wh, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return "", err
	}
	if wh == nil || !wh.IsActive {
		return "", domain.ErrNotFound
	}

	now := time.Now()
	var code string

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		store *ledger.TxStore,
		seq repository.SequenceRepository,
	) error {
		n, err := seq.Next(ctx, repository.SequenceStockMovements)
		if err != nil {
			return err
		}
		code = fmt.Sprintf("STM%04d", n)

		entry, err := store.GetForUpdate(ctx, input.ProductID, input.WarehouseID, input.ZoneID)
		if err != nil {
			return err
		}

		unitCost := decimal.Zero
		switch input.Type {
		case entity.MovementTypeIN:
			unitCost = *input.UnitCost
			if entry == nil {
				entry = &entity.LedgerEntry{
					ProductID:      input.ProductID,
					WarehouseID:    input.WarehouseID,
					ZoneID:         input.ZoneID,
					AvailableStock: input.Quantity,
					UnitCost:       unitCost,
				}
				if err := store.CreateEntry(ctx, entry); err != nil {
					return err
				}
			} else {
				newCost := inventory.CostCalculator(entry.CurrentStock(), entry.UnitCost, input.Quantity, unitCost)
				newAvailable := entry.AvailableStock.Add(input.Quantity)
				if err := store.SetStock(ctx, entry, newAvailable, &newCost); err != nil {
					return err
				}
			}
		case entity.MovementTypeOUT:
			if entry == nil {
				return domain.ErrLedgerNotFound
			}
			if entry.AvailableStock.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			unitCost = entry.UnitCost
			if err := store.SetStock(ctx, entry, entry.AvailableStock.Sub(input.Quantity), nil); err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			Code:        code,
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			ZoneID:      input.ZoneID,
			Type:        input.Type,
			Category:    input.Category,
			Quantity:    input.Quantity,
			UnitCost:    unitCost,
			TotalCost:   input.Quantity.Mul(unitCost),
			Reference:   input.Reference,
			Notes:       input.Notes,
			IsActive:    true,
			CreatedAt:   now,
			CreatedBy:   input.UserID,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}

	// Auditoría best-effort: nunca bloquea ni falla la operación principal.
	uc.log.Info().
		Str("code", code).
		Str("type", input.Type).
		Str("category", input.Category).
		Str("product_id", input.ProductID).
		Str("warehouse_id", input.WarehouseID).
		Str("quantity", input.Quantity.String()).
		Str("user_id", input.UserID).
		Msg("movimiento de stock registrado")

	return code, nil
}

func (uc *RecordMovementUseCase) validate(input MovementInput) error {
	if input.ProductID == "" || input.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIN && input.Type != entity.MovementTypeOUT {
		return domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.MovementTypeIN && (input.UnitCost == nil || input.UnitCost.IsNegative()) {
		return domain.ErrInvalidInput
	}
	return nil
}

// GetByCode devuelve un movimiento por su código correlativo.
func (uc *RecordMovementUseCase) GetByCode(ctx context.Context, code string) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if mov == nil || !mov.IsActive {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListByProduct lista el historial de movimientos de un producto.
func (uc *RecordMovementUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}

// ListByWarehouse lista el historial de movimientos de una bodega.
func (uc *RecordMovementUseCase) ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByWarehouse(ctx, warehouseID, from, to, limit, offset)
}

// Deactivate desactiva lógicamente un movimiento (el historial nunca se borra).
// No revierte el efecto sobre el ledger: para eso se usa un ajuste.
func (uc *RecordMovementUseCase) Deactivate(ctx context.Context, code string) error {
	if _, err := uc.GetByCode(ctx, code); err != nil {
		return err
	}
	return uc.movRepo.Deactivate(ctx, code)
}
