package service

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/mcg25035/smilepay-adapter-api/internal/config"
	"github.com/mcg25035/smilepay-adapter-api/internal/domain/entity"
	"github.com/mcg25035/smilepay-adapter-api/internal/domain/enum"
	"github.com/mcg25035/smilepay-adapter-api/internal/domain/repository"
	"github.com/mcg25035/smilepay-adapter-api/pkg/apperror"
	"github.com/mcg25035/smilepay-adapter-api/pkg/keylock"
	"github.com/mcg25035/smilepay-adapter-api/pkg/smilepay"
)

// PaymentGateway mints payment instruments against the external gateway.
// *smilepay.Client satisfies this.
type PaymentGateway interface {
	IssuePaymentInstrument(ctx context.Context, req smilepay.IssueRequest) (*smilepay.PaymentInstrument, error)
}

// CallbackVerifier authenticates inbound gateway callbacks.
// *smilepay.CallbackAuthenticator satisfies this.
type CallbackVerifier interface {
	Verify(amount, smseid, asserted string) bool
}

// Notifier informs the downstream system of record that an invoice was paid.
// *webhook.Client satisfies this.
type Notifier interface {
	Notify(ctx context.Context, invoiceID string) error
}

// PaymentService owns the invoice lifecycle: creation, one-shot payment
// method assignment, and finalization on a verified gateway callback. All
// invoice mutation goes through this service; everything else reads copies.
type PaymentService struct {
	invoiceRepo repository.InvoiceRepository
	gateway     PaymentGateway
	verifier    CallbackVerifier
	notifier    Notifier
	payment     config.PaymentConfig

	// locks serializes the read-decide-write window per invoice id, so
	// SetPaymentMethod and FinalizeInvoice can never interleave for the
	// same invoice.
	locks *keylock.KeyedMutex
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	invoiceRepo repository.InvoiceRepository,
	gateway PaymentGateway,
	verifier CallbackVerifier,
	notifier Notifier,
	payment config.PaymentConfig,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
		verifier:    verifier,
		notifier:    notifier,
		payment:     payment,
		locks:       keylock.New(),
	}
}

// LineItemInput represents a line item in a create request
type LineItemInput struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	InvoiceID     string
	Total         int64
	Items         []LineItemInput
	CustomerName  string
	CustomerEmail string
}

// CreateInvoice registers a new invoice and returns it. The operation is
// idempotent on invoice id: re-creating an existing invoice returns the
// stored record untouched, with its original payment link.
func (s *PaymentService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.InvoiceID == "" {
		return nil, apperror.ErrMissingInvoiceID
	}
	if input.Total < 0 {
		return nil, apperror.NewBadRequestError("Total must not be negative")
	}

	s.locks.Lock(input.InvoiceID)
	defer s.locks.Unlock(input.InvoiceID)

	existing, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, apperror.ErrPersistence
	}
	if existing != nil {
		return existing, nil
	}

	items := make([]entity.InvoiceItem, 0, len(input.Items)+1)
	for i, item := range input.Items {
		items = append(items, entity.InvoiceItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Position:  i,
		})
	}
	// Fee placeholder: priced once the payment method (and so the fee
	// tier) is known. Appended exactly once, here.
	items = append(items, entity.InvoiceItem{
		Name:      entity.FeeItemName,
		UnitPrice: 0,
		Quantity:  1,
		Position:  len(items),
	})

	invoice := &entity.Invoice{
		ID:            input.InvoiceID,
		Total:         input.Total,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		PaymentLink:   s.paymentLink(input.InvoiceID),
		Items:         items,
	}

	if err := s.invoiceRepo.Put(ctx, invoice); err != nil {
		return nil, apperror.ErrPersistence
	}
	return invoice, nil
}

// paymentLink derives the customer-facing payment page URL. Computed once at
// creation and immutable afterwards.
func (s *PaymentService) paymentLink(invoiceID string) string {
	return strings.TrimRight(s.payment.PageURL, "/") + "/" + url.PathEscape(invoiceID)
}

// SetPaymentMethodInput represents the payment method selection input
type SetPaymentMethodInput struct {
	InvoiceID        string
	Method           string
	ConvenienceStore string // required when Method is ConvenienceStoreCode
}

// SetPaymentMethod assigns the payment method once, asking the gateway for a
// payment instrument. The one-shot guard runs before the gateway call so a
// retried request can never incur a second gateway fee. On any gateway
// failure nothing is persisted and the invoice stays retryable.
func (s *PaymentService) SetPaymentMethod(ctx context.Context, input *SetPaymentMethodInput) (*entity.Invoice, error) {
	if input.InvoiceID == "" {
		return nil, apperror.ErrMissingInvoiceID
	}

	s.locks.Lock(input.InvoiceID)
	defer s.locks.Unlock(input.InvoiceID)

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, apperror.ErrPersistence
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound
	}
	if invoice.HasPaymentMethod() {
		return nil, apperror.ErrMethodAlreadySet
	}

	method, ok := enum.ParsePaymentMethod(input.Method)
	if !ok {
		return nil, apperror.ErrInvalidMethod
	}

	var payZg int
	var fee int64
	switch method {
	case enum.PaymentMethodConvenienceStore:
		store, ok := enum.ParseConvenienceStore(input.ConvenienceStore)
		if !ok {
			return nil, apperror.ErrInvalidStore
		}
		payZg = store.PayZg()
		fee = s.payment.FeeConvenienceStore
	case enum.PaymentMethodWebATM:
		payZg = enum.PayZgWebATM
		fee = s.payment.FeeWebATM
	}

	// Work on a copy; the stored record is only replaced after the
	// gateway call succeeds.
	next := invoice.Clone()
	applyFee(next, fee)

	instrument, err := s.gateway.IssuePaymentInstrument(ctx, smilepay.IssueRequest{
		InvoiceID:      next.ID,
		Amount:         next.Total,
		PurchaserName:  next.CustomerName,
		PurchaserEmail: next.CustomerEmail,
		PayZg:          payZg,
	})
	if err != nil {
		return nil, mapGatewayError(err)
	}

	now := time.Now().UTC()
	next.PaymentMethod = &method
	next.MethodSetAt = &now
	next.PaymentCode = instrument.StoreCode
	next.BankCode = instrument.BankCode
	next.AccountNumber = instrument.AccountNumber

	if err := s.invoiceRepo.Put(ctx, next); err != nil {
		return nil, apperror.ErrPersistence
	}
	return next, nil
}

// applyFee reprices the fee line item in place and shifts the total by the
// fee delta, keeping total equal to the item sum after the adjustment.
func applyFee(invoice *entity.Invoice, fee int64) {
	item := invoice.FeeItem()
	if item == nil {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			Name:      entity.FeeItemName,
			UnitPrice: fee,
			Quantity:  1,
			Position:  len(invoice.Items),
		})
		invoice.Total += fee
		return
	}
	invoice.Total += fee - item.UnitPrice
	item.UnitPrice = fee
}

func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, smilepay.ErrNotIssued):
		return apperror.ErrInstrumentNotIssued
	case errors.Is(err, smilepay.ErrInvalidResponse):
		return apperror.ErrGatewayResponseInvalid
	default:
		return apperror.ErrGatewayUnavailable
	}
}

// GetInvoice returns the invoice for the given id.
func (s *PaymentService) GetInvoice(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	if invoiceID == "" {
		return nil, apperror.ErrMissingInvoiceID
	}
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.ErrPersistence
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound
	}
	return invoice, nil
}

// FinalizeInvoice handles a verified payment confirmation: it authenticates
// the callback checksum, removes the invoice, and notifies the downstream
// system. A checksum mismatch changes nothing; a missing invoice is reported
// rather than swallowed, since the gateway confirming an untracked invoice is
// operationally significant; a notification failure is surfaced distinctly
// but never rolls the deletion back.
func (s *PaymentService) FinalizeInvoice(ctx context.Context, invoiceID, amount, smseid, asserted string) error {
	if invoiceID == "" {
		return apperror.ErrMissingInvoiceID
	}

	if !s.verifier.Verify(amount, smseid, asserted) {
		log.Printf("Checksum mismatch on callback for invoice %s (possible forgery attempt)", invoiceID)
		return apperror.ErrChecksumMismatch
	}

	s.locks.Lock(invoiceID)
	defer s.locks.Unlock(invoiceID)

	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrInvoiceNotFound
		}
		return apperror.ErrPersistence
	}

	if err := s.notifier.Notify(ctx, invoiceID); err != nil {
		log.Printf("Paid-invoice notification failed for invoice %s: %v", invoiceID, err)
		return apperror.ErrNotifyFailed
	}
	return nil
}
