package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/baguskharisma/pos-system-sub000/internal/aws"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "pos-worker").Logger()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	p := NewProcessor(clients, ProcessorConfig{
		OrdersTable:     os.Getenv("ORDERS_TABLE"),
		ProductsTable:   os.Getenv("PRODUCTS_TABLE"),
		EventsQueueURL:  os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		MetricNamespace: envOr("METRIC_NAMESPACE", "POS/Orders"),
	}, logger)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"order_id":"local-order-1","result":"SETTLED"}`
		}
		ev := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: body},
			},
		}
		if err := p.Handle(context.Background(), ev); err != nil {
			logger.Fatal().Err(err).Msg("local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
