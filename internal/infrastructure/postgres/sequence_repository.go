package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo generador de correlativos sobre la tabla sequences(name, value).
// El UPSERT con RETURNING incrementa y lee en una sola sentencia atómica: dos
// transacciones concurrentes nunca reciben el mismo número, y si la transacción
// que lo pidió hace rollback el número simplemente queda sin usar.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el generador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente correlativo de la secuencia indicada (inicia en 1).
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return n, nil
}
