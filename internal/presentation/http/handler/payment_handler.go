package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mcg25035/smilepay-adapter-api/internal/application/service"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/dto/request"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/dto/response"
)

// callbackAck is the fixed acknowledgement body the gateway expects on a
// successfully processed payment callback.
const callbackAck = "<Roturlstatus>RL_OK</Roturlstatus>"

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles POST /pay. Creating an invoice that already exists is not an
// error: the stored payment link is returned unchanged.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.LineItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, service.LineItemInput{
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
		})
	}

	invoice, err := h.paymentService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		InvoiceID:     req.InvoiceID,
		Total:         req.Total,
		Items:         items,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment link ready", gin.H{
		"payment_link": invoice.PaymentLink,
	})
}

// SetPaymentMethod handles PUT /pay
func (h *PaymentHandler) SetPaymentMethod(c *gin.Context) {
	var req request.SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.paymentService.SetPaymentMethod(c.Request.Context(), &service.SetPaymentMethodInput{
		InvoiceID:        req.InvoiceID,
		Method:           req.PaymentMethod,
		ConvenienceStore: req.ConvenienceStore,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method set", gin.H{
		"payment_method":     invoice.PaymentMethod.String(),
		"payment_instrument": invoice.InstrumentDisplay(),
		"total":              invoice.Total,
	})
}

// Get handles GET /pay/:invoice_id
func (h *PaymentHandler) Get(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	invoice, err := h.paymentService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", response.NewInvoiceResponse(invoice))
}

// HandleGatewayCallback handles the form-encoded payment confirmation the
// gateway posts after the customer pays. The gateway retries until it sees
// the fixed XML acknowledgement.
func (h *PaymentHandler) HandleGatewayCallback(c *gin.Context) {
	invoiceID := c.PostForm("Data_id")
	smseid := c.PostForm("Smseid")
	asserted := c.PostForm("Mid_smilepay")

	amount := c.PostForm("Purchamt")
	if amount == "" {
		amount = c.PostForm("Amount")
	}

	err := h.paymentService.FinalizeInvoice(c.Request.Context(), invoiceID, amount, smseid, asserted)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(callbackAck))
}
