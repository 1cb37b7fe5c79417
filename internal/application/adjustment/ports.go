package adjustment

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio
// de ajustes, la frontera de escritura del ledger y el generador de correlativos
// atados a esa transacción. La aprobación de un ajuste y su efecto sobre el
// ledger se confirman o revierten juntos.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		adjRepo repository.StockAdjustmentRepository,
		store *ledger.TxStore,
		seq repository.SequenceRepository,
	) error) error
}
