package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcg25035/smilepay-adapter-api/internal/domain/enum"
	"gorm.io/gorm"
)

// FeeItemName identifies the synthetic line item carrying the gateway
// processing fee. It is appended once at creation and mutated in place when
// the payment method (and therefore the fee tier) becomes known.
const FeeItemName = "Payment processing fee"

// Invoice represents a pending payment request. It exists from creation until
// the gateway confirms payment; confirmation deletes it, so presence in the
// store is synonymous with "payment still pending".
type Invoice struct {
	ID            string              `gorm:"primaryKey;size:100" json:"invoice_id"`
	Total         int64               `gorm:"not null" json:"total"`
	CustomerName  string              `gorm:"size:255" json:"name,omitempty"`
	CustomerEmail string              `gorm:"size:255" json:"email,omitempty"`
	PaymentLink   string              `gorm:"size:512" json:"payment_link"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method,omitempty"`

	// Payment instrument issued by the gateway: either a store code, or a
	// bank code plus account number. Set together with PaymentMethod.
	PaymentCode   string `gorm:"size:100" json:"payment_code,omitempty"`
	BankCode      string `gorm:"size:20" json:"bank_code,omitempty"`
	AccountNumber string `gorm:"size:50" json:"account_number,omitempty"`

	// MethodSetAt is the one-shot guard: once non-nil, the payment method
	// and instrument can never be rewritten.
	MethodSetAt *time.Time `json:"method_set_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;references:ID" json:"products"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// HasPaymentMethod reports whether the one-shot payment method assignment has
// already happened.
func (i *Invoice) HasPaymentMethod() bool {
	return i.MethodSetAt != nil
}

// InstrumentDisplay returns the customer-facing payment instrument, or ""
// when none has been issued yet.
func (i *Invoice) InstrumentDisplay() string {
	if i.PaymentCode != "" {
		return i.PaymentCode
	}
	if i.BankCode != "" && i.AccountNumber != "" {
		return i.BankCode + "-" + i.AccountNumber
	}
	return ""
}

// FeeItem returns the gateway-fee line item, or nil if it was never appended.
func (i *Invoice) FeeItem() *InvoiceItem {
	for idx := range i.Items {
		if i.Items[idx].Name == FeeItemName {
			return &i.Items[idx]
		}
	}
	return nil
}

// ItemsTotal sums the line items in minor currency units.
func (i *Invoice) ItemsTotal() int64 {
	var total int64
	for idx := range i.Items {
		total += i.Items[idx].UnitPrice * int64(i.Items[idx].Quantity)
	}
	return total
}

// Clone returns a deep copy. Lifecycle mutations operate on copies and write
// the full next value back, never on records aliased into the store.
func (i *Invoice) Clone() *Invoice {
	dup := *i
	if i.PaymentMethod != nil {
		method := *i.PaymentMethod
		dup.PaymentMethod = &method
	}
	if i.MethodSetAt != nil {
		at := *i.MethodSetAt
		dup.MethodSetAt = &at
	}
	dup.Items = make([]InvoiceItem, len(i.Items))
	copy(dup.Items, i.Items)
	return &dup
}

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceID string    `gorm:"size:100;not null;index" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Position  int       `gorm:"not null" json:"-"` // preserves caller-supplied line order
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
