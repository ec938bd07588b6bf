package smilepay

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIURL = "https://ssl.smse.com.tw/api/SPPayment.asp"

	// CallbackPath is the route the gateway posts payment confirmations to.
	// It is appended to the configured self URL to form Roturl.
	CallbackPath = "/api/smilepay/pay"

	roturlStatusPaid = "SmilepayPaid"

	// The gateway requires the field but this adapter never collects a
	// mobile number.
	mobileNumberPlaceholder = "--"
)

// Errors returned by the gateway client. Callers distinguish them with
// errors.Is; none of them mean partial state was created on the gateway side
// that this adapter needs to track.
var (
	ErrUnavailable     = errors.New("smilepay: gateway unreachable")
	ErrInvalidResponse = errors.New("smilepay: invalid gateway response")
	ErrNotIssued       = errors.New("smilepay: gateway did not issue a payment instrument")
)

// Config holds the merchant credentials and URLs for the SmilePay gateway.
type Config struct {
	Dcvc        string // merchant code
	Rvg2c       string // parameter-set code
	VerifyKey   string // merchant verification key
	OdSobPrefix string // prefix for the gateway-facing order reference
	SelfURL     string // public base URL of this service, used to build Roturl
	APIURL      string // gateway endpoint, defaults to the production URL
}

// Client issues payment instruments against the SmilePay SPPayment API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new SmilePay gateway client
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IssueRequest carries the invoice fields the gateway needs to mint a payment
// instrument.
type IssueRequest struct {
	InvoiceID      string
	Amount         int64 // minor currency units, after fees
	PurchaserName  string
	PurchaserEmail string
	PayZg          int // gateway payment-channel code
}

// PaymentInstrument is the concrete means of payment the gateway issued:
// either a convenience-store code or a virtual bank account pair.
type PaymentInstrument struct {
	StoreCode     string
	BankCode      string
	AccountNumber string
}

// Display returns the customer-facing form of the instrument.
func (p *PaymentInstrument) Display() string {
	if p.StoreCode != "" {
		return p.StoreCode
	}
	return p.BankCode + "-" + p.AccountNumber
}

// paymentResponse mirrors the SPPayment XML document. Field order is not
// guaranteed by the gateway, which encoding/xml handles naturally.
type paymentResponse struct {
	XMLName   xml.Name `xml:"SmilePay"`
	IbonNo    string   `xml:"IbonNo"`
	FamiNO    string   `xml:"FamiNO"`
	AtmBankNo string   `xml:"AtmBankNo"`
	AtmNo     string   `xml:"AtmNo"`
}

// IssuePaymentInstrument requests a payment code or virtual account from the
// gateway for the given invoice. The request shape is fixed by the gateway
// API and must not be changed.
func (c *Client) IssuePaymentInstrument(ctx context.Context, req IssueRequest) (*PaymentInstrument, error) {
	q := url.Values{}
	q.Set("Dcvc", c.cfg.Dcvc)
	q.Set("Rvg2c", c.cfg.Rvg2c)
	q.Set("Verify_key", c.cfg.VerifyKey)
	q.Set("Od_sob", c.cfg.OdSobPrefix+req.InvoiceID)
	q.Set("Pay_zg", strconv.Itoa(req.PayZg))
	q.Set("Amount", strconv.FormatInt(req.Amount, 10))
	q.Set("Pur_name", req.PurchaserName)
	q.Set("Mobile_number", mobileNumberPlaceholder)
	q.Set("Email", req.PurchaserEmail)
	q.Set("Roturl", strings.TrimRight(c.cfg.SelfURL, "/")+CallbackPath)
	q.Set("Roturl_status", roturlStatusPaid)
	q.Set("Data_id", req.InvoiceID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var parsed paymentResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return selectInstrument(&parsed)
}

// selectInstrument applies the gateway's field-priority policy: a store code
// field wins outright; a bank pair counts only when both halves are present.
func selectInstrument(resp *paymentResponse) (*PaymentInstrument, error) {
	if code := strings.TrimSpace(resp.IbonNo); code != "" {
		return &PaymentInstrument{StoreCode: code}, nil
	}
	if code := strings.TrimSpace(resp.FamiNO); code != "" {
		return &PaymentInstrument{StoreCode: code}, nil
	}

	bank := strings.TrimSpace(resp.AtmBankNo)
	account := strings.TrimSpace(resp.AtmNo)
	if bank != "" && account != "" {
		return &PaymentInstrument{BankCode: bank, AccountNumber: account}, nil
	}

	return nil, ErrNotIssued
}
