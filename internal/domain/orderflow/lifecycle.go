// Package orderflow gobierna el ciclo de vida de un pedido: transiciones de
// estado, sellado de la fecha de entrega y disciplina de los flags de pago y
// factura. Ninguna operación muta el pedido recibido; todas devuelven el
// pedido nuevo junto con el Patch de campos a persistir, de modo que el caller
// pueda aplicar actualizaciones parciales u optimistas.
package orderflow

import (
	"fmt"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// Patch describe los campos del pedido que cambian en una mutación.
// Puntero nil = sin cambio. ClearDeliveredAt distingue "poner NULL" de
// "sin cambio" para DeliveredAt.
type Patch struct {
	Status           *string
	DeliveredAt      *time.Time
	ClearDeliveredAt bool
	Paid             *bool
	Invoice          *bool
	InvoiceSent      *bool
	CourierID        *string
	DeliveryDate     *time.Time
	PaymentMethod    *string
}

// Empty informa si el patch no toca ningún campo.
func (p Patch) Empty() bool {
	return p.Status == nil && p.DeliveredAt == nil && !p.ClearDeliveredAt &&
		p.Paid == nil && p.Invoice == nil && p.InvoiceSent == nil &&
		p.CourierID == nil && p.DeliveryDate == nil && p.PaymentMethod == nil
}

// Merge acumula los campos de other sobre p. El último valor gana.
func (p Patch) Merge(other Patch) Patch {
	if other.Status != nil {
		p.Status = other.Status
	}
	if other.DeliveredAt != nil {
		p.DeliveredAt = other.DeliveredAt
		p.ClearDeliveredAt = false
	}
	if other.ClearDeliveredAt {
		p.ClearDeliveredAt = true
		p.DeliveredAt = nil
	}
	if other.Paid != nil {
		p.Paid = other.Paid
	}
	if other.Invoice != nil {
		p.Invoice = other.Invoice
	}
	if other.InvoiceSent != nil {
		p.InvoiceSent = other.InvoiceSent
	}
	if other.CourierID != nil {
		p.CourierID = other.CourierID
	}
	if other.DeliveryDate != nil {
		p.DeliveryDate = other.DeliveryDate
	}
	if other.PaymentMethod != nil {
		p.PaymentMethod = other.PaymentMethod
	}
	return p
}

// allowedTransitions define el grafo de estados: pending puede entregarse o
// cancelarse, delivered puede revertirse a pending, cancelled es terminal.
// Repetir el estado actual es siempre un no-op válido.
var allowedTransitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered: {entity.OrderStatusPending},
	entity.OrderStatusCancelled: {},
}

// ApplyStatusTransition valida y aplica un cambio de estado sobre el pedido.
//
// Efectos:
//   - entrar a delivered sella DeliveredAt con now si está vacío; repetir
//     delivered no vuelve a sellar (idempotente).
//   - revertir delivered → pending limpia DeliveredAt; una entrega posterior
//     vuelve a sellar con la hora de ese momento.
//
// Un estado fuera del enum devuelve ErrInvalidStatus y un salto no permitido
// por el grafo devuelve ErrInvalidTransition; en ambos casos el pedido
// devuelto es el original sin cambios.
func ApplyStatusTransition(o entity.Order, newStatus string, now time.Time) (entity.Order, Patch, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return o, Patch{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}
	if newStatus == o.Status {
		return o, Patch{}, nil
	}
	if !transitionAllowed(o.Status, newStatus) {
		return o, Patch{}, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, o.Status, newStatus)
	}

	out := o
	out.Status = newStatus
	patch := Patch{Status: &newStatus}

	switch {
	case newStatus == entity.OrderStatusDelivered && o.DeliveredAt == nil:
		stamp := now
		out.DeliveredAt = &stamp
		patch.DeliveredAt = &stamp
	case o.Status == entity.OrderStatusDelivered && newStatus == entity.OrderStatusPending:
		out.DeliveredAt = nil
		patch.ClearDeliveredAt = true
	}
	return out, patch, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetPaid fija el flag de pago. Es independiente del estado del pedido.
func SetPaid(o entity.Order, paid bool) (entity.Order, Patch) {
	out := o
	out.Paid = paid
	return out, Patch{Paid: &paid}
}

// TogglePaid invierte el flag de pago.
func TogglePaid(o entity.Order) (entity.Order, Patch) {
	return SetPaid(o, !o.Paid)
}

// SetInvoice fija si el pedido requiere factura. Apagarlo mientras
// InvoiceSent está activo fuerza InvoiceSent a false en el mismo patch,
// manteniendo el invariante InvoiceSent ⇒ Invoice.
func SetInvoice(o entity.Order, invoice bool) (entity.Order, Patch) {
	out := o
	out.Invoice = invoice
	patch := Patch{Invoice: &invoice}
	if !invoice && o.InvoiceSent {
		f := false
		out.InvoiceSent = false
		patch.InvoiceSent = &f
	}
	return out, patch
}

// SetInvoiceSent fija el flag de factura emitida. Marcarlo en un pedido que
// no requiere factura queda forzado a false (el invariante manda).
func SetInvoiceSent(o entity.Order, sent bool) (entity.Order, Patch) {
	if sent && !o.Invoice {
		sent = false
	}
	out := o
	out.InvoiceSent = sent
	return out, Patch{InvoiceSent: &sent}
}

// ToggleInvoiceSent invierte el flag de factura emitida respetando el
// invariante: sin Invoice el resultado siempre es false.
func ToggleInvoiceSent(o entity.Order) (entity.Order, Patch) {
	return SetInvoiceSent(o, !o.InvoiceSent)
}
