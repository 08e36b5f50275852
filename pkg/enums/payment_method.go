package enums

import "fmt"

// PaymentMethod is the settlement method selected at checkout. Both are
// settled on delivery; no processor integration exists.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCardOnDelivery PaymentMethod = "card_on_delivery"
)

func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCashOnDelivery || p == PaymentMethodCardOnDelivery
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case PaymentMethodCashOnDelivery:
		return PaymentMethodCashOnDelivery, nil
	case PaymentMethodCardOnDelivery:
		return PaymentMethodCardOnDelivery, nil
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
