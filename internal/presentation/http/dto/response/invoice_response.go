package response

import (
	"time"

	"github.com/mcg25035/smilepay-adapter-api/internal/domain/entity"
)

// InvoiceItemResponse represents one line item in an invoice view
type InvoiceItemResponse struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// InvoiceResponse is the public invoice view. Customer name and email are
// deliberately absent: the lookup endpoint is reachable by anyone holding the
// invoice id.
type InvoiceResponse struct {
	InvoiceID         string                `json:"invoice_id"`
	Total             int64                 `json:"total"`
	Products          []InvoiceItemResponse `json:"products"`
	PaymentLink       string                `json:"payment_link"`
	PaymentMethod     string                `json:"payment_method,omitempty"`
	PaymentInstrument string                `json:"payment_instrument,omitempty"`
	MethodSetAt       *time.Time            `json:"method_set_at,omitempty"`
}

// NewInvoiceResponse builds the public view of an invoice.
func NewInvoiceResponse(invoice *entity.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	resp := &InvoiceResponse{
		InvoiceID:         invoice.ID,
		Total:             invoice.Total,
		Products:          items,
		PaymentLink:       invoice.PaymentLink,
		PaymentInstrument: invoice.InstrumentDisplay(),
		MethodSetAt:       invoice.MethodSetAt,
	}
	if invoice.PaymentMethod != nil {
		resp.PaymentMethod = invoice.PaymentMethod.String()
	}
	return resp
}
