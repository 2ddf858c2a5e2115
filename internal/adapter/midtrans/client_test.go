package midtrans

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	gomidtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type snapStub struct {
	lastReq *snap.Request
	resp    *snap.Response
	err     *gomidtrans.Error
}

func (s *snapStub) CreateTransaction(req *snap.Request) (*snap.Response, *gomidtrans.Error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("key", false, "://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewClient("key", false, "/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewClient("key", false, "https://api.sandbox.midtrans.com/v2", testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	stub := &snapStub{resp: &snap.Response{Token: "tok", RedirectURL: "https://app.midtrans.com/snap/v4/redirection/tok"}}
	client := &Client{snap: stub, logger: testLogger()}

	req := CreateRequest{
		OrderID:       "ord-1",
		Amount:        2000000,
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "08123456789",
		ProductID:     "ws-42",
		ProductName:   "Hot Desk",
		PaymentMethod: model.PaymentMethodCreditCard,
	}

	result, err := client.CreateTransaction(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SnapToken != "tok" || result.RedirectURL == "" {
		t.Fatalf("unexpected result %+v", result)
	}

	if stub.lastReq.TransactionDetails.OrderID != "ord-1" {
		t.Errorf("expected order id propagated, got %q", stub.lastReq.TransactionDetails.OrderID)
	}
	if stub.lastReq.TransactionDetails.GrossAmt != 2000000 {
		t.Errorf("expected gross amount propagated, got %d", stub.lastReq.TransactionDetails.GrossAmt)
	}
	if stub.lastReq.CreditCard == nil || !stub.lastReq.CreditCard.Secure {
		t.Error("expected secure credit card details for credit_card method")
	}
	if len(stub.lastReq.EnabledPayments) != 1 || stub.lastReq.EnabledPayments[0] != snap.PaymentTypeCreditCard {
		t.Errorf("unexpected enabled payments %v", stub.lastReq.EnabledPayments)
	}
}

func TestCreateTransactionNoPaymentURL(t *testing.T) {
	stub := &snapStub{resp: &snap.Response{}}
	client := &Client{snap: stub, logger: testLogger()}

	_, err := client.CreateTransaction(context.Background(), CreateRequest{OrderID: "ord-2", Amount: 1000})
	if !errors.Is(err, domainErrors.ErrNoPaymentURL) {
		t.Fatalf("expected ErrNoPaymentURL, got %v", err)
	}
}

func TestCreateTransactionGatewayError(t *testing.T) {
	stub := &snapStub{err: &gomidtrans.Error{Message: "midtrans rejected", StatusCode: 401}}
	client := &Client{snap: stub, logger: testLogger()}

	if _, err := client.CreateTransaction(context.Background(), CreateRequest{OrderID: "ord-3", Amount: 1000}); err == nil {
		t.Fatal("expected error from gateway")
	}
}

func TestEnabledPayments(t *testing.T) {
	if got := enabledPayments(model.PaymentMethodEwallet); len(got) != 2 {
		t.Errorf("expected two e-wallet channels, got %v", got)
	}
	if got := enabledPayments(model.PaymentMethodBankTransfer); len(got) != 1 || got[0] != snap.PaymentTypeBankTransfer {
		t.Errorf("unexpected bank transfer channels %v", got)
	}
	if got := enabledPayments("cash"); got != nil {
		t.Errorf("expected nil for unknown method, got %v", got)
	}
}

func TestFetchStatusEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "flat",
			body: `{"order_id":"ord-9","transaction_status":"settlement","payment_type":"gopay","status_code":"200"}`,
		},
		{
			name: "nested",
			body: `{"success":true,"data":{"order_id":"ord-9","transaction_status":"settlement","payment_type":"gopay"}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/ord-9/status" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				if _, _, ok := r.BasicAuth(); !ok {
					t.Error("expected basic auth with server key")
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewClient("key", false, srv.URL, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			state, err := client.FetchStatus(context.Background(), "ord-9")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.OrderID != "ord-9" || state.Status != model.TransactionStatusSettlement || state.PaymentType != "gopay" {
				t.Fatalf("unexpected state %+v", state)
			}
		})
	}
}

func TestNormalizeStatusEquivalence(t *testing.T) {
	flat := []byte(`{"order_id":"ord-1","transaction_status":"capture","payment_type":"credit_card"}`)
	nested := []byte(`{"success":true,"data":{"order_id":"ord-1","transaction_status":"capture","payment_type":"credit_card"}}`)

	a, err := normalizeStatus(flat)
	if err != nil {
		t.Fatalf("flat normalize failed: %v", err)
	}
	b, err := normalizeStatus(nested)
	if err != nil {
		t.Fatalf("nested normalize failed: %v", err)
	}
	if *a != *b {
		t.Fatalf("expected identical canonical state, got %+v vs %+v", a, b)
	}
}

func TestNormalizeStatusErrors(t *testing.T) {
	if _, err := normalizeStatus([]byte(`not-json`)); err == nil {
		t.Error("expected decode error")
	}
	if _, err := normalizeStatus([]byte(`{"status_code":"404","status_message":"not found"}`)); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound for embedded 404, got %v", err)
	}
	if _, err := normalizeStatus([]byte(`{"order_id":"x"}`)); err == nil {
		t.Error("expected error for missing transaction_status")
	}
}

func TestFetchStatusSpecialCodes(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, err := NewClient("key", false, srv.URL, testLogger())
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
		if _, err := client.FetchStatus(context.Background(), "missing"); !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("http 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client, err := NewClient("key", false, srv.URL, testLogger())
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
		if _, err := client.FetchStatus(context.Background(), "ord"); err == nil {
			t.Fatal("expected error from server")
		}
	})
}
