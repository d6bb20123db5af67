package engine

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
	orderbookv1 "github.com/kaushalkahapola/exchange-application/internal/domain/orderbook/v1"
	reportv1 "github.com/kaushalkahapola/exchange-application/internal/domain/report/v1"
	"github.com/kaushalkahapola/exchange-application/internal/usecase/orderbook"
	"github.com/kaushalkahapola/exchange-application/internal/usecase/validator"
	"github.com/kaushalkahapola/exchange-application/pkg/logger"
)

// Session is the exchange component owning the per-instrument order books and
// the execution report sink. Books persist across batches submitted to the
// same session; a fresh session starts with empty books.
//
// Matching is strictly sequential: each order is fully validated and matched
// before the next one is considered. The session mutex enforces the
// single-writer discipline when batches arrive from multiple goroutines.
type Session struct {
	mu sync.Mutex

	id        string
	validator *validator.Validator
	books     map[orderv1.Instrument]*orderbook.Book
	sink      reportv1.Sink
	publisher reportv1.Publisher
	logger    *logger.Logger

	lastOrderID  int64
	lastSequence int64
	totalTrades  int64
}

// NewSession creates a session with empty books for all instruments.
func NewSession(sink reportv1.Sink, log *logger.Logger, opts ...Option) *Session {
	id := ulid.Make().String()

	s := &Session{
		id:        id,
		validator: validator.New(),
		books:     make(map[orderv1.Instrument]*orderbook.Book),
		sink:      sink,
		logger:    log.WithFields(logger.Field{Key: "sessionID", Value: id}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Submit runs a batch of raw orders through validation and matching in
// submission order. Every order yields at least one execution report on the
// sink; order ids keep increasing across batches within the session.
func (s *Session) Submit(ctx context.Context, batch []orderv1.NewOrderRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "Processing order batch", logger.Field{
		Key:   "orders",
		Value: len(batch),
	})

	for _, req := range batch {
		s.lastOrderID++

		if reason := s.validator.Check(req); reason != "" {
			s.reject(ctx, s.lastOrderID, req, reason)
			continue
		}

		s.lastSequence++
		order := orderv1.NewOrder(s.lastOrderID, req, s.lastSequence)
		s.process(ctx, order)
	}

	s.logger.InfoContext(ctx, "Order batch complete", logger.Field{
		Key:   "orders",
		Value: len(batch),
	}, logger.Field{
		Key:   "reports",
		Value: s.sink.Len(),
	})
}

// Book returns the session's order book for an instrument, creating it on
// first use.
func (s *Session) Book(instrument orderv1.Instrument) *orderbook.Book {
	book, exists := s.books[instrument]
	if !exists {
		book = orderbook.NewBook(instrument)
		s.books[instrument] = book
	}
	return book
}

// TotalTrades returns the number of fills executed by this session.
func (s *Session) TotalTrades() int64 {
	return s.totalTrades
}

// process matches one accepted order against its instrument's book and rests
// any remainder. A New report is emitted only when the order books without a
// single fill; fills produce one aggressor report and one resting report each.
func (s *Session) process(ctx context.Context, order *orderv1.Order) {
	book := s.Book(order.Instrument)

	fills := book.Match(order)

	for _, fill := range fills {
		s.emit(ctx, fillReport(order, &fill, fill.AggressorIsFilled()))
		s.emit(ctx, fillReport(fill.Resting, &fill, fill.RestingIsFilled()))
	}

	if order.Remaining > 0 {
		if err := book.InsertResting(order); err != nil {
			s.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "orderID",
				Value: order.ID,
			})
			return
		}

		if len(fills) == 0 {
			s.emit(ctx, reportv1.ExecutionReport{
				OrderID:       order.ID,
				ClientOrderID: order.ClientOrderID,
				Instrument:    string(order.Instrument),
				Side:          int(order.Side),
				Status:        reportv1.StatusNew,
				Quantity:      order.Remaining,
				Price:         order.Price,
			})
		}
	}

	if len(fills) > 0 {
		s.logTrades(ctx, order, fills)
	}
}

// reject emits the single Rejected report for an order that failed validation.
// The report carries the submitted quantity and price; no book is touched.
func (s *Session) reject(ctx context.Context, orderID int64, req orderv1.NewOrderRequest, reason string) {
	s.logger.DebugContext(ctx, "Order rejected",
		logger.Field{Key: "orderID", Value: orderID},
		logger.Field{Key: "clientOrderID", Value: req.ClientOrderID},
		logger.Field{Key: "reason", Value: reason},
	)

	s.emit(ctx, reportv1.ExecutionReport{
		OrderID:       orderID,
		ClientOrderID: req.ClientOrderID,
		Instrument:    req.Instrument,
		Side:          req.Side,
		Status:        reportv1.StatusRejected,
		Quantity:      req.Quantity,
		Price:         req.Price,
		Reason:        reason,
	})
}

// emit appends a report to the sink and fans it out to the publisher when one
// is configured. Publish failures are logged and do not interrupt matching.
func (s *Session) emit(ctx context.Context, report reportv1.ExecutionReport) {
	s.sink.Append(report)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, report); err != nil {
			s.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "publish_execution_report"},
				logger.Field{Key: "orderID", Value: report.OrderID},
			)
		}
	}
}

// logTrades logs each fill and updates the session trade counter.
func (s *Session) logTrades(ctx context.Context, aggressor *orderv1.Order, fills []orderbookv1.Fill) {
	s.totalTrades += int64(len(fills))

	for i, fill := range fills {
		s.logger.InfoContext(ctx, "Trade executed",
			logger.Field{Key: "tradeIndex", Value: i + 1},
			logger.Field{Key: "instrument", Value: string(aggressor.Instrument)},
			logger.Field{Key: "price", Value: fill.Price.String()},
			logger.Field{Key: "quantity", Value: fill.Quantity},
			logger.Field{Key: "aggressorOrderID", Value: aggressor.ID},
			logger.Field{Key: "restingOrderID", Value: fill.Resting.ID},
			logger.Field{Key: "aggressorFilled", Value: fill.AggressorIsFilled()},
			logger.Field{Key: "restingFilled", Value: fill.RestingIsFilled()},
		)
	}
}

// fillReport builds the execution report for one party to a fill. The price is
// always the resting order's limit price.
func fillReport(order *orderv1.Order, fill *orderbookv1.Fill, filled bool) reportv1.ExecutionReport {
	status := reportv1.StatusPartiallyFilled
	if filled {
		status = reportv1.StatusFilled
	}

	return reportv1.ExecutionReport{
		OrderID:       order.ID,
		ClientOrderID: order.ClientOrderID,
		Instrument:    string(order.Instrument),
		Side:          int(order.Side),
		Status:        status,
		Quantity:      fill.Quantity,
		Price:         fill.Price,
	}
}
