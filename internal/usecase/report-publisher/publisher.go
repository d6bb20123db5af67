package reportpublisher

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	reportv1 "github.com/kaushalkahapola/exchange-application/internal/domain/report/v1"
	"github.com/kaushalkahapola/exchange-application/pkg/config"
	"github.com/kaushalkahapola/exchange-application/pkg/errors"
	"github.com/kaushalkahapola/exchange-application/pkg/logger"
)

// Publisher streams execution reports to a Kafka topic as they are emitted.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a Kafka publisher for execution reports.
func NewPublisher(cfg config.ReportPublisherConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// Publish writes one execution report to the topic, keyed by order id so all
// reports for an order land on the same partition in emission order.
func (p *Publisher) Publish(ctx context.Context, report reportv1.ExecutionReport) error {
	buf, err := json.Marshal(report)
	if err != nil {
		return errors.NewTracer("failed to encode execution report").Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(report.OrderID, 10)),
		Value: buf,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "orderID", Value: report.OrderID},
			logger.Field{Key: "status", Value: string(report.Status)},
		)
		return errors.NewTracer("failed to publish execution report").Wrap(err)
	}

	return nil
}

// Close properly closes the Kafka writer.
func (p *Publisher) Close() error {
	if err := p.kafkaWriter.Close(); err != nil {
		p.logger.Error(err, logger.Field{Key: "action", Value: "close_report_publisher"})
		return err
	}
	return nil
}
