package orderflow

import (
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// NormalizeItems sanea las líneas de un pedido entrante: cantidades negativas
// quedan en cero, precios negativos en cero y el subtotal se recalcula siempre
// como qty × price. Nunca se confía en el subtotal recibido.
func NormalizeItems(items []entity.OrderItem) []entity.OrderItem {
	out := make([]entity.OrderItem, len(items))
	for i, it := range items {
		if it.Qty < 0 {
			it.Qty = 0
		}
		if it.Price.IsNegative() {
			it.Price = decimal.Zero
		}
		it.Subtotal = it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
		out[i] = it
	}
	return out
}

// ComputeTotal suma los subtotales de las líneas ya normalizadas.
func ComputeTotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
