package validator

import (
	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
)

// Rejection reasons, worded exactly as they appear on execution reports.
const (
	ReasonInvalidClientOrderID = "Invalid Cl. Ord. ID"
	ReasonInvalidInstrument    = "Invalid Instrument"
	ReasonInvalidSide          = "Invalid Side"
	ReasonInvalidQuantity      = "Invalid Quantity"
	ReasonInvalidPrice         = "Invalid Price"
)

// Quantity bounds enforced by the exchange.
const (
	MinQuantity      = 10
	MaxQuantity      = 1000
	QuantityMultiple = 10
)

// MaxClientOrderIDLen is the longest client order id the exchange accepts.
const MaxClientOrderIDLen = 6

// Validator is a stateless rule checker classifying raw orders as accepted or
// rejected.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Check evaluates the exchange rules against a raw order in fixed priority
// order and stops at the first failure. It returns the rejection reason, or
// an empty string when the order is accepted.
func (v *Validator) Check(req orderv1.NewOrderRequest) string {
	if req.ClientOrderID == "" || len(req.ClientOrderID) > MaxClientOrderIDLen {
		return ReasonInvalidClientOrderID
	}
	if !orderv1.Instrument(req.Instrument).Valid() {
		return ReasonInvalidInstrument
	}
	if !orderv1.Side(req.Side).Valid() {
		return ReasonInvalidSide
	}
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity || req.Quantity%QuantityMultiple != 0 {
		return ReasonInvalidQuantity
	}
	if req.Price.IsNegative() {
		return ReasonInvalidPrice
	}
	return ""
}
