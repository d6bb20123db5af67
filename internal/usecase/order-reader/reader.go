package orderreader

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
	"github.com/kaushalkahapola/exchange-application/pkg/errors"
	"github.com/kaushalkahapola/exchange-application/pkg/logger"
)

var (
	// ErrSchema indicates a required column is missing from the batch. The run
	// must abort before any order reaches the matching core.
	ErrSchema = stderrors.New("required column missing")
	// ErrEmptyBatch indicates the batch contains no order records.
	ErrEmptyBatch = stderrors.New("no orders found")
)

// requiredColumns are the batch columns that must be present, in the order
// they are checked.
var requiredColumns = []string{"Cl. Ord. ID", "Instrument", "Side", "Quantity", "Price"}

// Reader parses a CSV order batch into raw order requests. It enforces the
// batch-level schema and emptiness gates; per-field values are carried through
// as submitted so the validator can reject bad orders individually.
type Reader struct {
	logger *logger.Logger
}

// NewReader creates a Reader.
func NewReader(log *logger.Logger) *Reader {
	return &Reader{logger: log}
}

// ReadFile reads an order batch from a CSV file.
func (r *Reader) ReadFile(path string) ([]orderv1.NewOrderRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTracer(fmt.Sprintf("failed to open order batch %s", path)).Wrap(err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read reads an order batch from src. It fails with ErrSchema when any of the
// five required columns is absent and with ErrEmptyBatch when the batch holds
// zero records; both are fatal and happen before any record is handed to the
// core.
func (r *Reader) Read(src io.Reader) ([]orderv1.NewOrderRequest, error) {
	c := csv.NewReader(src)
	c.TrimLeadingSpace = true

	header, err := c.Read()
	if err == io.EOF {
		return nil, errors.NewTracer("order batch has no header row").Wrap(ErrSchema)
	}
	if err != nil {
		return nil, errors.NewTracer("failed to read order batch header").Wrap(err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.NewTracer(fmt.Sprintf("%s column not found", column)).Wrap(ErrSchema)
		}
	}

	var requests []orderv1.NewOrderRequest
	for {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewTracer("failed to read order record").Wrap(err)
		}

		requests = append(requests, r.parseRecord(record, index))
	}

	if len(requests) == 0 {
		return nil, errors.NewTracer("order batch contains no records").Wrap(ErrEmptyBatch)
	}

	r.logger.Info("Order batch read",
		logger.Field{Key: "orders", Value: len(requests)},
	)

	return requests, nil
}

// parseRecord converts one CSV record into a raw order request. Unparseable
// numeric cells become values the validator is guaranteed to reject, keeping
// bad cells a per-order concern rather than a batch-level one.
func (r *Reader) parseRecord(record []string, index map[string]int) orderv1.NewOrderRequest {
	req := orderv1.NewOrderRequest{
		ClientOrderID: strings.TrimSpace(record[index["Cl. Ord. ID"]]),
		Instrument:    strings.TrimSpace(record[index["Instrument"]]),
	}

	if side, err := strconv.Atoi(strings.TrimSpace(record[index["Side"]])); err == nil {
		req.Side = side
	}

	if quantity, err := strconv.ParseInt(strings.TrimSpace(record[index["Quantity"]]), 10, 64); err == nil {
		req.Quantity = quantity
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[index["Price"]]))
	if err != nil {
		price = decimal.NewFromInt(-1)
	}
	req.Price = price

	return req
}
