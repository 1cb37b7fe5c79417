package movement

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de movimientos, la frontera de escritura del ledger y el generador
// de correlativos atados a esa transacción. Garantiza que el movimiento y su
// efecto sobre el ledger se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		store *ledger.TxStore,
		seq repository.SequenceRepository,
	) error) error
}
