package reportwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	reportv1 "github.com/kaushalkahapola/exchange-application/internal/domain/report/v1"
	"github.com/kaushalkahapola/exchange-application/pkg/errors"
	"github.com/kaushalkahapola/exchange-application/pkg/logger"
)

// header is the execution report table header, matching the exchange's
// published report format.
var header = []string{
	"orderId",
	"Cl. Ord. ID",
	"Instrument",
	"Side",
	"ExecutionStatus",
	"Quantity",
	"Price",
	"Reason for Rejection",
}

// Writer renders an execution report sequence as a CSV table.
type Writer struct {
	logger *logger.Logger
}

// NewWriter creates a Writer.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{logger: log}
}

// WriteFile writes the report table to a CSV file, replacing any existing one.
func (w *Writer) WriteFile(path string, reports []reportv1.ExecutionReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewTracer(fmt.Sprintf("failed to create report file %s", path)).Wrap(err)
	}
	defer f.Close()

	if err := w.Write(f, reports); err != nil {
		return err
	}

	w.logger.Info("Execution report written",
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "reports", Value: len(reports)},
	)

	return nil
}

// Write renders the report table to dst in emission order.
func (w *Writer) Write(dst io.Writer, reports []reportv1.ExecutionReport) error {
	c := csv.NewWriter(dst)

	if err := c.Write(header); err != nil {
		return errors.NewTracer("failed to write report header").Wrap(err)
	}

	for _, r := range reports {
		record := []string{
			strconv.FormatInt(r.OrderID, 10),
			r.ClientOrderID,
			r.Instrument,
			strconv.Itoa(r.Side),
			string(r.Status),
			strconv.FormatInt(r.Quantity, 10),
			r.Price.String(),
			r.Reason,
		}
		if err := c.Write(record); err != nil {
			return errors.NewTracer("failed to write report record").Wrap(err)
		}
	}

	c.Flush()
	if err := c.Error(); err != nil {
		return errors.NewTracer("failed to flush report table").Wrap(err)
	}

	return nil
}
