package main

import (
	"context"
	"os"

	app "github.com/kaushalkahapola/exchange-application/internal/app/engine"
	orderreader "github.com/kaushalkahapola/exchange-application/internal/usecase/order-reader"
	"github.com/kaushalkahapola/exchange-application/internal/usecase/report"
	reportpublisher "github.com/kaushalkahapola/exchange-application/internal/usecase/report-publisher"
	reportwriter "github.com/kaushalkahapola/exchange-application/internal/usecase/report-writer"
	"github.com/kaushalkahapola/exchange-application/pkg/config"
	"github.com/kaushalkahapola/exchange-application/pkg/logger"
	"github.com/kaushalkahapola/exchange-application/pkg/util"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	defer log.Sync()

	ctx := util.WithRequestID(context.Background(), "")

	// Read the order batch. Schema and empty-batch failures are fatal and
	// abort before the matching core sees a single order.
	reader := orderreader.NewReader(log)
	batch, err := reader.ReadFile(cfg.OrdersPath)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "read_order_batch",
		})
		os.Exit(1)
	}

	sink := report.NewLog()

	var opts []app.Option
	if cfg.ReportKafka.Enabled {
		publisher := reportpublisher.NewPublisher(cfg.ReportKafka, log)
		defer publisher.Close()
		opts = append(opts, app.WithPublisher(publisher))
	}

	session := app.NewSession(sink, log, opts...)
	session.Submit(ctx, batch)

	writer := reportwriter.NewWriter(log)
	if err := writer.WriteFile(cfg.ReportPath, sink.Reports()); err != nil {
		log.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "write_execution_report",
		})
		os.Exit(1)
	}

	log.InfoContext(ctx, "Exchange run complete",
		logger.Field{Key: "sessionID", Value: session.ID()},
		logger.Field{Key: "orders", Value: len(batch)},
		logger.Field{Key: "reports", Value: sink.Len()},
		logger.Field{Key: "trades", Value: session.TotalTrades()},
	)
}
