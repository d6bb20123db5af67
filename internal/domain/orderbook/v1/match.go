package orderbookv1

import (
	"github.com/shopspring/decimal"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
)

// Fill represents one trade between the incoming (aggressor) order and a
// resting order. The remaining quantities are captured at the moment the fill
// happens, so report statuses can be derived per fill rather than from the
// orders' final state after a multi-candidate walk.
type Fill struct {
	Resting            *orderv1.Order  `json:"resting"`
	Quantity           int64           `json:"quantity"`
	Price              decimal.Decimal `json:"price"` // Resting order's limit price
	RestingRemaining   int64           `json:"restingRemaining"`
	AggressorRemaining int64           `json:"aggressorRemaining"`
}

// RestingIsFilled checks if the resting order was exhausted by this fill.
func (f *Fill) RestingIsFilled() bool {
	return f.RestingRemaining == 0
}

// AggressorIsFilled checks if the aggressor order was exhausted by this fill.
func (f *Fill) AggressorIsFilled() bool {
	return f.AggressorRemaining == 0
}
