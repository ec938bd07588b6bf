package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how the customer chose to pay
type PaymentMethod int

const (
	// PaymentMethodConvenienceStore is payment by a code presented at a
	// convenience-store kiosk.
	PaymentMethodConvenienceStore PaymentMethod = 0
	// PaymentMethodWebATM is payment by transfer to a gateway-issued
	// virtual bank account.
	PaymentMethodWebATM PaymentMethod = 1
)

// PayZgWebATM is the gateway channel code for virtual-account collection.
// Convenience-store channel codes live on ConvenienceStore values.
const PayZgWebATM = 2

func (m PaymentMethod) String() string {
	return [...]string{"ConvenienceStoreCode", "WebATM"}[m]
}

// ParsePaymentMethod maps the wire name to a PaymentMethod. The method set is
// closed; anything else is rejected here rather than checked dynamically.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "ConvenienceStoreCode":
		return PaymentMethodConvenienceStore, true
	case "WebATM":
		return PaymentMethodWebATM, true
	}
	return 0, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	if parsed, ok := ParsePaymentMethod(str); ok {
		*m = parsed
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodConvenienceStore
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
