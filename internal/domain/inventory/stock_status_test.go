package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/inventory"
)

// Umbrales de referencia: mínimo 10, reorden 20, máximo 100.
func entryConStock(disponible, reservado string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		AvailableStock: decimal.RequireFromString(disponible),
		ReservedStock:  decimal.RequireFromString(reservado),
		MinimumLevel:   decimal.NewFromInt(10),
		ReorderLevel:   decimal.NewFromInt(20),
		MaximumLevel:   decimal.NewFromInt(100),
	}
}

func TestClassifyStock(t *testing.T) {
	casos := []struct {
		nombre     string
		disponible string
		reservado  string
		esperado   inventory.StockStatus
	}{
		{"por debajo del mínimo", "9.99", "0", inventory.StatusLowStock},
		{"cero es bajo stock", "0", "0", inventory.StatusLowStock},
		{"en el mínimo entra a reorden", "10", "0", inventory.StatusReorder},
		{"entre mínimo y reorden", "15", "0", inventory.StatusReorder},
		{"en el punto de reorden", "20", "0", inventory.StatusReorder},
		{"zona normal", "20.01", "0", inventory.StatusNormal},
		{"en el máximo", "100", "0", inventory.StatusOverstock},
		{"sobre el máximo", "150", "0", inventory.StatusOverstock},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			e := entryConStock(tc.disponible, tc.reservado)
			assert.Equal(t, tc.esperado, inventory.ClassifyStock(e))
		})
	}
}

// La clasificación se evalúa sobre el stock total: lo reservado sigue en bodega.
func TestClassifyStock_IncluyeReservado(t *testing.T) {
	e := entryConStock("5", "10") // total 15, entre mínimo y reorden
	assert.Equal(t, inventory.StatusReorder, inventory.ClassifyStock(e))

	e = entryConStock("2", "3") // total 5, bajo el mínimo
	assert.Equal(t, inventory.StatusLowStock, inventory.ClassifyStock(e))
}

// Umbrales en cero deshabilitan reorden y sobre-stock.
func TestClassifyStock_SinUmbralesEsNormal(t *testing.T) {
	e := &entity.LedgerEntry{AvailableStock: decimal.NewFromInt(500)}
	assert.Equal(t, inventory.StatusNormal, inventory.ClassifyStock(e))
}
