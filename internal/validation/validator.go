package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})
	v.RegisterStructValidation(cartStructValidation, CartRequest{})
	v.RegisterStructValidation(paymentStructValidation, PaymentRequest{})
	v.RegisterStructValidation(productStructValidation, ProductRequest{})

	return v
}

// checkoutStructValidation enforces the per-order-type customer fields:
// delivery needs name, phone and address before an order can be placed.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	if req.OrderType == "DELIVERY" {
		if req.Customer.Name == "" {
			sl.ReportError(req.Customer.Name, "customer.name", "Name", "required_for_delivery", "")
		}
		if req.Customer.Phone == "" {
			sl.ReportError(req.Customer.Phone, "customer.phone", "Phone", "required_for_delivery", "")
		}
		if req.Customer.Address == "" {
			sl.ReportError(req.Customer.Address, "customer.address", "Address", "required_for_delivery", "")
		}
	}

	validateCartAmounts(sl, req.CartRequest)
}

// cartStructValidation covers CartRequest used on its own (hold endpoint),
// where customer info may still be incomplete.
func cartStructValidation(sl validatorv10.StructLevel) {
	validateCartAmounts(sl, sl.Current().Interface().(CartRequest))
}

func validateCartAmounts(sl validatorv10.StructLevel, req CartRequest) {
	if req.Discount != nil && req.Discount.Value.IsNegative() {
		sl.ReportError(req.Discount.Value, "discount.value", "Value", "gte_zero", "")
	}
	if req.ServiceCharge.IsNegative() {
		sl.ReportError(req.ServiceCharge, "service_charge", "ServiceCharge", "gte_zero", "")
	}
	if req.DeliveryFee.IsNegative() {
		sl.ReportError(req.DeliveryFee, "delivery_fee", "DeliveryFee", "gte_zero", "")
	}
}

// paymentStructValidation requires a positive tendered amount; whether it
// covers the order total is the lifecycle controller's call.
func paymentStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(PaymentRequest)

	if !req.PaidAmount.IsPositive() {
		sl.ReportError(req.PaidAmount, "paid_amount", "PaidAmount", "gt_zero", "")
	}
	if req.ChangeAmount != nil && req.ChangeAmount.IsNegative() {
		sl.ReportError(req.ChangeAmount, "change_amount", "ChangeAmount", "gte_zero", "")
	}
}

func productStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)

	if req.Price.IsNegative() {
		sl.ReportError(req.Price, "price", "Price", "gte_zero", "")
	}
}
