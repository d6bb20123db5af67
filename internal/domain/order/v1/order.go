package orderv1

import (
	"github.com/shopspring/decimal"
)

// Side represents the side of an order, using the wire encoding 1=Buy, 2=Sell.
type Side int

const (
	// SideBuy represents a buy order.
	SideBuy Side = 1
	// SideSell represents a sell order.
	SideSell Side = 2
)

// Valid checks if the side is one of the known wire values.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the opposing side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// Instrument represents a tradable instrument on the exchange.
type Instrument string

const (
	// InstrumentRose is the Rose instrument.
	InstrumentRose Instrument = "Rose"
	// InstrumentLavender is the Lavender instrument.
	InstrumentLavender Instrument = "Lavender"
	// InstrumentLotus is the Lotus instrument.
	InstrumentLotus Instrument = "Lotus"
	// InstrumentTulip is the Tulip instrument.
	InstrumentTulip Instrument = "Tulip"
	// InstrumentOrchid is the Orchid instrument.
	InstrumentOrchid Instrument = "Orchid"
)

// Instruments returns all instruments tradable on the exchange.
func Instruments() []Instrument {
	return []Instrument{
		InstrumentRose,
		InstrumentLavender,
		InstrumentLotus,
		InstrumentTulip,
		InstrumentOrchid,
	}
}

// Valid checks if the instrument is tradable on the exchange.
func (i Instrument) Valid() bool {
	for _, known := range Instruments() {
		if i == known {
			return true
		}
	}
	return false
}

// NewOrderRequest represents a raw order record handed over by the ingestion
// layer. Field values are carried as submitted so that validation can reject
// them individually.
type NewOrderRequest struct {
	ClientOrderID string          `json:"clientOrderID"`
	Instrument    string          `json:"instrument"`
	Side          int             `json:"side"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
}

// Order represents a single validated order in the exchange.
type Order struct {
	ID            int64           `json:"id"`
	ClientOrderID string          `json:"clientOrderID"`
	Instrument    Instrument      `json:"instrument"`
	Side          Side            `json:"side"`
	Quantity      int64           `json:"quantity"`
	Remaining     int64           `json:"remaining"`
	Price         decimal.Decimal `json:"price"`
	Sequence      int64           `json:"sequence"` // Arrival sequence for time priority
}

// NewOrder creates a validated order from a raw request with the given
// identifiers. Remaining starts at the full submitted quantity.
func NewOrder(id int64, req NewOrderRequest, sequence int64) *Order {
	return &Order{
		ID:            id,
		ClientOrderID: req.ClientOrderID,
		Instrument:    Instrument(req.Instrument),
		Side:          Side(req.Side),
		Quantity:      req.Quantity,
		Remaining:     req.Quantity,
		Price:         req.Price,
		Sequence:      sequence,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsFilled checks if the order is fully filled (nothing remaining).
func (o *Order) IsFilled() bool {
	return o.Remaining == 0
}

// Crosses checks whether the order's limit price permits a trade against a
// resting order at restingPrice: a buy crosses at or above it, a sell at or
// below it.
func (o *Order) Crosses(restingPrice decimal.Decimal) bool {
	if o.IsBid() {
		return o.Price.GreaterThanOrEqual(restingPrice)
	}
	return o.Price.LessThanOrEqual(restingPrice)
}
