package enums

import "fmt"

// DeliverySlot captures the requested delivery window at checkout.
type DeliverySlot string

const (
	DeliverySlotASAP      DeliverySlot = "asap"
	DeliverySlotScheduled DeliverySlot = "scheduled"
)

func (d DeliverySlot) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliverySlot.
func (d DeliverySlot) IsValid() bool {
	return d == DeliverySlotASAP || d == DeliverySlotScheduled
}

// ParseDeliverySlot converts raw input into a DeliverySlot.
func ParseDeliverySlot(value string) (DeliverySlot, error) {
	switch DeliverySlot(value) {
	case DeliverySlotASAP:
		return DeliverySlotASAP, nil
	case DeliverySlotScheduled:
		return DeliverySlotScheduled, nil
	}
	return "", fmt.Errorf("invalid delivery slot %q", value)
}
