package orderbookv1

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
)

var (
	ErrNilOrder      = errors.New("order cannot be nil")
	ErrInvalidSize   = errors.New("remaining quantity must be positive")
	ErrOrderNotFound = errors.New("order not found in limit")
)

// Limit represents a price level in the order book. Orders are held in
// arrival-sequence order, so the slice itself is the time-priority queue.
type Limit struct {
	Price       decimal.Decimal  `json:"price"`
	Orders      []*orderv1.Order `json:"orders"`
	TotalVolume int64            `json:"totalVolume"`
}

// NewLimit creates a new Limit at the specified price.
func NewLimit(price decimal.Decimal) *Limit {
	return &Limit{
		Price:  price,
		Orders: make([]*orderv1.Order, 0),
	}
}

// AddOrder appends an order to the limit's time-priority queue and updates the
// total volume. Orders arrive in sequence order, so appending preserves the
// queue invariant.
func (l *Limit) AddOrder(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Remaining <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, order.Remaining)
	}

	l.Orders = append(l.Orders, order)
	l.TotalVolume += order.Remaining

	return nil
}

// RemoveOrder removes an order from the limit and updates the total volume.
func (l *Limit) RemoveOrder(order *orderv1.Order) error {
	if order == nil {
		return ErrNilOrder
	}

	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalVolume -= order.Remaining
			return nil
		}
	}

	return ErrOrderNotFound
}

// Fill matches the incoming order against this limit's queue in time priority
// and returns one Fill per resting order touched. Exhausted resting orders are
// removed the moment their remaining quantity reaches zero; removal happens
// after each candidate is filled, never while scanning ahead.
func (l *Limit) Fill(incoming *orderv1.Order) []Fill {
	if incoming == nil {
		return nil
	}

	var fills []Fill

	for len(l.Orders) > 0 && incoming.Remaining > 0 {
		resting := l.Orders[0]

		fills = append(fills, l.createFill(incoming, resting))

		if resting.Remaining == 0 {
			l.removeIfExhausted(resting)
		}
	}

	return fills
}

// createFill trades the incoming order against one resting order at this
// limit's price, decrementing both remainders.
func (l *Limit) createFill(incoming, resting *orderv1.Order) Fill {
	quantity := min(incoming.Remaining, resting.Remaining)

	incoming.Remaining -= quantity
	resting.Remaining -= quantity
	l.TotalVolume -= quantity

	return Fill{
		Resting:            resting,
		Quantity:           quantity,
		Price:              l.Price,
		RestingRemaining:   resting.Remaining,
		AggressorRemaining: incoming.Remaining,
	}
}

// removeIfExhausted drops a fully filled order from the head of the queue.
func (l *Limit) removeIfExhausted(order *orderv1.Order) {
	for i, o := range l.Orders {
		if o == order {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			break
		}
	}
}

// IsEmpty checks if the limit has no orders.
func (l *Limit) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this limit.
func (l *Limit) OrderCount() int {
	return len(l.Orders)
}

// Peek returns the order with the highest time priority at this limit, or nil
// if the limit is empty.
func (l *Limit) Peek() *orderv1.Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}

// Validate performs basic consistency checks on the limit's state.
func (l *Limit) Validate() error {
	if l.Price.IsNegative() {
		return fmt.Errorf("limit price %s is negative", l.Price)
	}

	var calculated int64
	for _, order := range l.Orders {
		if order == nil {
			return fmt.Errorf("nil order found in limit")
		}
		if order.Remaining <= 0 {
			return fmt.Errorf("%w: order %d has remaining %d", ErrInvalidSize, order.ID, order.Remaining)
		}
		calculated += order.Remaining
	}

	if calculated != l.TotalVolume {
		return fmt.Errorf("volume mismatch: calculated %d, stored %d", calculated, l.TotalVolume)
	}

	return nil
}
