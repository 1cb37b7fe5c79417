package adjustment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
	"github.com/jhoicas/molino-inventario/pkg/logger"
)

// AdjustmentUseCase implementa el flujo de ajustes correctivos de stock:
// Draft -> {PendingApproval | Approved} -> {Approved | Rejected}.
// El ledger solo se toca cuando el ajuste queda Approved, y exactamente una vez.
type AdjustmentUseCase struct {
	txRunner TxRunner
	adjRepo  repository.StockAdjustmentRepository // lecturas fuera de transacción
	log      *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, adjRepo repository.StockAdjustmentRepository, log *logger.Logger) *AdjustmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustmentUseCase{txRunner: txRunner, adjRepo: adjRepo, log: log}
}

// AdjustmentInput entrada para crear una solicitud de ajuste.
type AdjustmentInput struct {
	ProductID        string
	WarehouseID      string
	ZoneID           string
	Type             string // Increase | Decrease | Transfer
	Quantity         decimal.Decimal
	Reason           string
	RequiresApproval bool
	UserID           string
}

// Create registra la solicitud de ajuste. Toma la foto BeforeQuantity del asiento
// bajo bloqueo de fila y calcula AfterQuantity según el tipo:
//   - Increase: before + cantidad
//   - Decrease: before - cantidad (falla con ErrNegativeStock si queda negativo)
//   - Transfer: cantidad como valor absoluto
//
// Si RequiresApproval es false, el ajuste queda Approved y el ledger se actualiza
// en la misma transacción; si es true, queda PendingApproval sin tocar el ledger.
func (uc *AdjustmentUseCase) Create(ctx context.Context, input AdjustmentInput) (*entity.StockAdjustment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	var adj *entity.StockAdjustment

	err := uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.StockAdjustmentRepository,
		store *ledger.TxStore,
		seq repository.SequenceRepository,
	) error {
		entry, err := store.GetForUpdate(ctx, input.ProductID, input.WarehouseID, input.ZoneID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrLedgerNotFound
		}

		before := entry.CurrentStock()
		after, err := computeAfter(input.Type, before, input.Quantity)
		if err != nil {
			return err
		}

		n, err := seq.Next(ctx, repository.SequenceStockAdjustments)
		if err != nil {
			return err
		}

		adj = &entity.StockAdjustment{
			ID:               uuid.New().String(),
			Code:             fmt.Sprintf("ADJ%04d", n),
			ProductID:        input.ProductID,
			WarehouseID:      input.WarehouseID,
			ZoneID:           input.ZoneID,
			Type:             input.Type,
			Quantity:         input.Quantity,
			BeforeQuantity:   before,
			AfterQuantity:    after,
			Reason:           input.Reason,
			RequiresApproval: input.RequiresApproval,
			State:            entity.AdjustmentStatePendingApproval,
			RequestedBy:      input.UserID,
			IsActive:         true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if !input.RequiresApproval {
			// Sin aprobación: se aplica de inmediato, en la misma transacción.
			if err := applyToLedger(ctx, store, entry, after); err != nil {
				return err
			}
			adj.State = entity.AdjustmentStateApproved
			adj.ApprovedBy = input.UserID
			adj.ApprovedAt = &now
		}

		return adjRepo.Create(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("code", adj.Code).
		Str("type", adj.Type).
		Str("state", string(adj.State)).
		Str("product_id", adj.ProductID).
		Str("warehouse_id", adj.WarehouseID).
		Str("user_id", input.UserID).
		Msg("ajuste de stock creado")

	return adj, nil
}

// Approve aprueba un ajuste pendiente y aplica el cambio al ledger exactamente una
// vez. Si el stock actual ya no coincide con la foto BeforeQuantity (hubo
// movimientos entre la solicitud y la aprobación), falla con ErrConflict y el
// ajuste debe solicitarse de nuevo sobre el estado vigente.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, id, actor, remarks string) (*entity.StockAdjustment, error) {
	if id == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var adj *entity.StockAdjustment

	err := uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.StockAdjustmentRepository,
		store *ledger.TxStore,
		_ repository.SequenceRepository,
	) error {
		var err error
		adj, err = adjRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if adj == nil || !adj.IsActive {
			return domain.ErrNotFound
		}
		if !adj.State.CanTransition(entity.AdjustmentStateApproved) {
			return domain.ErrInvalidTransition
		}

		entry, err := store.GetForUpdate(ctx, adj.ProductID, adj.WarehouseID, adj.ZoneID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrLedgerNotFound
		}
		// Foto obsoleta: el ledger cambió entre la solicitud y la aprobación.
		if !entry.CurrentStock().Equal(adj.BeforeQuantity) {
			return domain.ErrConflict
		}
		if err := applyToLedger(ctx, store, entry, adj.AfterQuantity); err != nil {
			return err
		}

		adj.State = entity.AdjustmentStateApproved
		adj.ApprovedBy = actor
		adj.ApprovedAt = &now
		adj.Remarks = remarks
		adj.UpdatedAt = now
		return adjRepo.Update(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("code", adj.Code).Str("approved_by", actor).Msg("ajuste de stock aprobado")
	return adj, nil
}

// Reject rechaza un ajuste pendiente. No tiene efecto sobre el ledger.
func (uc *AdjustmentUseCase) Reject(ctx context.Context, id, actor, reason string) (*entity.StockAdjustment, error) {
	if id == "" || actor == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var adj *entity.StockAdjustment

	err := uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.StockAdjustmentRepository,
		_ *ledger.TxStore,
		_ repository.SequenceRepository,
	) error {
		var err error
		adj, err = adjRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if adj == nil || !adj.IsActive {
			return domain.ErrNotFound
		}
		if !adj.State.CanTransition(entity.AdjustmentStateRejected) {
			return domain.ErrInvalidTransition
		}
		adj.State = entity.AdjustmentStateRejected
		adj.RejectedBy = actor
		adj.RejectedAt = &now
		adj.Remarks = reason
		adj.UpdatedAt = now
		return adjRepo.Update(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("code", adj.Code).Str("rejected_by", actor).Msg("ajuste de stock rechazado")
	return adj, nil
}

// Delete desactiva lógicamente un ajuste. Solo se permite mientras no esté Approved.
func (uc *AdjustmentUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.StockAdjustmentRepository,
		_ *ledger.TxStore,
		_ repository.SequenceRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if adj == nil || !adj.IsActive {
			return domain.ErrNotFound
		}
		if adj.State == entity.AdjustmentStateApproved {
			return domain.ErrInvalidTransition
		}
		return adjRepo.Deactivate(ctx, id)
	})
}

// GetByID devuelve un ajuste por su ID.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	adj, err := uc.adjRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil || !adj.IsActive {
		return nil, domain.ErrNotFound
	}
	return adj, nil
}

// List lista ajustes, opcionalmente filtrados por estado ("" = todos).
func (uc *AdjustmentUseCase) List(ctx context.Context, state entity.AdjustmentState, limit, offset int) ([]*entity.StockAdjustment, error) {
	return uc.adjRepo.List(ctx, state, limit, offset)
}

// applyToLedger fija el stock total del asiento en afterQuantity respetando la
// cantidad reservada: se ajusta el disponible de modo que disponible + reservado
// = afterQuantity. Si lo reservado supera el objetivo, el ajuste no es aplicable.
func applyToLedger(ctx context.Context, store *ledger.TxStore, entry *entity.LedgerEntry, afterQuantity decimal.Decimal) error {
	newAvailable := afterQuantity.Sub(entry.ReservedStock)
	return store.SetStock(ctx, entry, newAvailable, nil)
}

func validateInput(input AdjustmentInput) error {
	if input.ProductID == "" || input.WarehouseID == "" || input.Reason == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.AdjustmentTypeIncrease, entity.AdjustmentTypeDecrease:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.AdjustmentTypeTransfer:
		if input.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func computeAfter(adjType string, before, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch adjType {
	case entity.AdjustmentTypeIncrease:
		return before.Add(quantity), nil
	case entity.AdjustmentTypeDecrease:
		after := before.Sub(quantity)
		if after.IsNegative() {
			return decimal.Zero, domain.ErrNegativeStock
		}
		return after, nil
	case entity.AdjustmentTypeTransfer:
		return quantity, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}
