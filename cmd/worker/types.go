package main

// Gateway results carried in PaymentEvent.
const (
	ResultSettled = "SETTLED"
	ResultFailed  = "FAILED"
)

// PaymentEvent is the payment-gateway callback payload delivered via SQS.
type PaymentEvent struct {
	OrderID          string `json:"order_id"`
	GatewayReference string `json:"gateway_reference,omitempty"`
	Result           string `json:"result"` // SETTLED | FAILED
	CorrelationID    string `json:"correlation_id,omitempty"`
}
