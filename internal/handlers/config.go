package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/baguskharisma/pos-system-sub000/internal/aws"
	"github.com/baguskharisma/pos-system-sub000/internal/catalog"
	"github.com/baguskharisma/pos-system-sub000/internal/heldorder"
	"github.com/baguskharisma/pos-system-sub000/internal/order"
	"github.com/baguskharisma/pos-system-sub000/internal/orderstore"
	"github.com/baguskharisma/pos-system-sub000/internal/ratelimit"
)

// HandlerConfig groups dependencies for the POS API handlers.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI

	OrdersTable     string
	HeldOrdersTable string
	ProductsTable   string
	EventsQueueURL  string
	MetricNamespace string

	HoldTTL time.Duration
	TaxRate decimal.Decimal

	NumberGenerator order.NumberGenerator
	Limiter         *ratelimit.Limiter
	Logger          zerolog.Logger
}

// deps are the constructed services shared by all routes.
type deps struct {
	cfg       HandlerConfig
	orders    *orderstore.Store
	held      *heldorder.Store
	products  *catalog.Store
	publisher *aws.Publisher
	metrics   *aws.Metrics
	ctrl      *order.Controller
	checkout  *order.CheckoutService
	logger    zerolog.Logger
}

// RegisterRoutes wires every POS route onto the router.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	gen := cfg.NumberGenerator
	if gen == nil {
		gen = order.DefaultNumberGenerator
	}

	d := &deps{
		cfg:       cfg,
		orders:    orderstore.NewStore(cfg.DynamoDBClient, cfg.OrdersTable),
		held:      heldorder.NewStore(cfg.DynamoDBClient, cfg.HeldOrdersTable, cfg.HoldTTL),
		products:  catalog.NewStore(cfg.DynamoDBClient, cfg.ProductsTable),
		publisher: aws.NewPublisher(cfg.SQSClient, cfg.EventsQueueURL),
		metrics:   aws.NewMetrics(cfg.CloudWatchClient, cfg.MetricNamespace),
		ctrl:      order.NewController(),
		checkout:  order.NewCheckoutService(gen),
		logger:    cfg.Logger,
	}

	if cfg.Limiter != nil {
		r.Use(rateLimitMiddleware(cfg.Limiter))
	}

	registerOrderRoutes(r, d)
	registerHeldOrderRoutes(r, d)
	registerCatalogRoutes(r, d)
}
