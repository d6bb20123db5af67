package reportv1

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExecutionStatus represents the outcome described by an execution report.
type ExecutionStatus string

const (
	// StatusNew indicates an order booked with no immediate match.
	StatusNew ExecutionStatus = "New"
	// StatusPartiallyFilled indicates a fill that left quantity outstanding.
	StatusPartiallyFilled ExecutionStatus = "PartiallyFilled"
	// StatusFilled indicates a fill that exhausted the order.
	StatusFilled ExecutionStatus = "Filled"
	// StatusRejected indicates the order failed validation and never entered a book.
	StatusRejected ExecutionStatus = "Rejected"
)

// ExecutionReport describes the outcome of one event affecting an order.
// Quantity and Price are the quantity and price concerned by this report: the
// matched quantity and the resting order's price for a fill, the submitted
// values for a rejection, and the resting quantity and own limit price for a
// newly booked order.
type ExecutionReport struct {
	OrderID       int64           `json:"orderID"`
	ClientOrderID string          `json:"clientOrderID"`
	Instrument    string          `json:"instrument"`
	Side          int             `json:"side"`
	Status        ExecutionStatus `json:"executionStatus"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Reason        string          `json:"reasonForRejection,omitempty"`
}

// Sink is an ordered append-only log of execution reports. Emission order is
// the order in which the validator and matching engine produce them.
type Sink interface {
	Append(report ExecutionReport)
	Reports() []ExecutionReport
	Len() int
}

// Publisher streams execution reports to an external destination as they are
// appended.
type Publisher interface {
	Publish(ctx context.Context, report ExecutionReport) error
}
