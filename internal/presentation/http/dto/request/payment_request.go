package request

// LineItemRequest represents one product line on a create request
type LineItemRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"unit_price" binding:"min=0"`
	Quantity  int    `json:"quantity" binding:"min=1"`
}

// CreateInvoiceRequest represents an invoice creation request. The invoice id
// is supplied by the caller and validated by the service so a missing id gets
// the domain error rather than a generic binding failure.
type CreateInvoiceRequest struct {
	InvoiceID string            `json:"invoice_id"`
	Total     int64             `json:"total" binding:"min=0"`
	Products  []LineItemRequest `json:"products"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
}

// SetPaymentMethodRequest represents a payment method selection request
type SetPaymentMethodRequest struct {
	InvoiceID        string `json:"invoice_id"`
	PaymentMethod    string `json:"payment_method"`
	ConvenienceStore string `json:"convenience_store"`
}
