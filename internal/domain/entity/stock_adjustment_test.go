package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// Matriz completa de transiciones del flujo de aprobación. Los estados
// terminales no admiten salida, lo que garantiza que un ajuste aprobado
// nunca se aplica dos veces ni se reabre.
func TestAdjustmentState_CanTransition(t *testing.T) {
	casos := []struct {
		desde     entity.AdjustmentState
		hacia     entity.AdjustmentState
		permitido bool
	}{
		{entity.AdjustmentStateDraft, entity.AdjustmentStatePendingApproval, true},
		{entity.AdjustmentStateDraft, entity.AdjustmentStateApproved, true},
		{entity.AdjustmentStateDraft, entity.AdjustmentStateRejected, false},
		{entity.AdjustmentStateDraft, entity.AdjustmentStateDraft, false},

		{entity.AdjustmentStatePendingApproval, entity.AdjustmentStateApproved, true},
		{entity.AdjustmentStatePendingApproval, entity.AdjustmentStateRejected, true},
		{entity.AdjustmentStatePendingApproval, entity.AdjustmentStateDraft, false},

		{entity.AdjustmentStateApproved, entity.AdjustmentStateRejected, false},
		{entity.AdjustmentStateApproved, entity.AdjustmentStatePendingApproval, false},
		{entity.AdjustmentStateApproved, entity.AdjustmentStateApproved, false},

		{entity.AdjustmentStateRejected, entity.AdjustmentStateApproved, false},
		{entity.AdjustmentStateRejected, entity.AdjustmentStatePendingApproval, false},
	}
	for _, tc := range casos {
		got := tc.desde.CanTransition(tc.hacia)
		assert.Equal(t, tc.permitido, got, "%s -> %s", tc.desde, tc.hacia)
	}
}

func TestAdjustmentState_IsTerminal(t *testing.T) {
	assert.False(t, entity.AdjustmentStateDraft.IsTerminal())
	assert.False(t, entity.AdjustmentStatePendingApproval.IsTerminal())
	assert.True(t, entity.AdjustmentStateApproved.IsTerminal())
	assert.True(t, entity.AdjustmentStateRejected.IsTerminal())
}
