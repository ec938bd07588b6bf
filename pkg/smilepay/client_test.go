package smilepay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *url.Values) {
	t.Helper()

	var seen url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		Dcvc:        "0123",
		Rvg2c:       "1",
		VerifyKey:   "verify-key",
		OdSobPrefix: "SHOP-",
		SelfURL:     "https://pay.example.com",
		APIURL:      srv.URL,
	})
	return client, &seen
}

func TestIssuePaymentInstrumentStoreCode(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><SmilePay><Status>1</Status><IbonNo>1234567890</IbonNo></SmilePay>`))
	})

	instrument, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{
		InvoiceID:      "inv-001",
		Amount:         135,
		PurchaserName:  "王小明",
		PurchaserEmail: "buyer@example.com",
		PayZg:          4,
	})
	require.NoError(t, err)
	assert.Equal(t, "1234567890", instrument.StoreCode)
	assert.Equal(t, "1234567890", instrument.Display())

	q := *seen
	assert.Equal(t, "0123", q.Get("Dcvc"))
	assert.Equal(t, "1", q.Get("Rvg2c"))
	assert.Equal(t, "verify-key", q.Get("Verify_key"))
	assert.Equal(t, "SHOP-inv-001", q.Get("Od_sob"))
	assert.Equal(t, "4", q.Get("Pay_zg"))
	assert.Equal(t, "135", q.Get("Amount"))
	assert.Equal(t, "王小明", q.Get("Pur_name"))
	assert.Equal(t, "--", q.Get("Mobile_number"))
	assert.Equal(t, "buyer@example.com", q.Get("Email"))
	assert.Equal(t, "https://pay.example.com/api/smilepay/pay", q.Get("Roturl"))
	assert.Equal(t, "SmilepayPaid", q.Get("Roturl_status"))
	assert.Equal(t, "inv-001", q.Get("Data_id"))
}

func TestIssuePaymentInstrumentFamiMart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SmilePay><FamiNO>FM98765</FamiNO></SmilePay>`))
	})

	instrument, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-002", Amount: 100, PayZg: 6})
	require.NoError(t, err)
	assert.Equal(t, "FM98765", instrument.StoreCode)
}

func TestIssuePaymentInstrumentBankPair(t *testing.T) {
	// Fields deliberately out of the usual order; parsing must not care.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SmilePay><AtmNo>0001234567</AtmNo><Status>1</Status><AtmBankNo>808</AtmBankNo></SmilePay>`))
	})

	instrument, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-003", Amount: 113, PayZg: 2})
	require.NoError(t, err)
	assert.Equal(t, "808", instrument.BankCode)
	assert.Equal(t, "0001234567", instrument.AccountNumber)
	assert.Equal(t, "808-0001234567", instrument.Display())
}

func TestIssuePaymentInstrumentIncompleteBankPair(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SmilePay><AtmBankNo>808</AtmBankNo></SmilePay>`))
	})

	_, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-004", Amount: 113, PayZg: 2})
	assert.ErrorIs(t, err, ErrNotIssued)
}

func TestIssuePaymentInstrumentNothingIssued(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SmilePay><Status>0</Status></SmilePay>`))
	})

	_, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-005", Amount: 100, PayZg: 4})
	assert.ErrorIs(t, err, ErrNotIssued)
}

func TestIssuePaymentInstrumentMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not xml at all`))
	})

	_, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-006", Amount: 100, PayZg: 4})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestIssuePaymentInstrumentGatewayDown(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-007", Amount: 100, PayZg: 4})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIssuePaymentInstrumentUnreachable(t *testing.T) {
	client := NewClient(Config{APIURL: "http://127.0.0.1:1"})

	_, err := client.IssuePaymentInstrument(context.Background(), IssueRequest{InvoiceID: "inv-008", Amount: 100, PayZg: 4})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIssuePaymentInstrumentCancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SmilePay><IbonNo>123</IbonNo></SmilePay>`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.IssuePaymentInstrument(ctx, IssueRequest{InvoiceID: "inv-009", Amount: 100, PayZg: 4})
	assert.ErrorIs(t, err, ErrUnavailable)
}
