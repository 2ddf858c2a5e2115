package midtrans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	gomidtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
)

// ErrTransactionNotFound indicates the gateway doesn't know the order yet.
var ErrTransactionNotFound = errors.New("transaction not found")

// CreateRequest carries everything the gateway needs to open a transaction.
type CreateRequest struct {
	OrderID       string
	Amount        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductID     string
	ProductName   string
	PaymentMethod model.PaymentMethod
}

// CreateResult is the gateway's answer to a create request.
type CreateResult struct {
	SnapToken   string
	RedirectURL string
}

// Gateway exposes payment gateway operations.
type Gateway interface {
	CreateTransaction(ctx context.Context, req CreateRequest) (*CreateResult, error)
	FetchStatus(ctx context.Context, orderID string) (*model.TransactionState, error)
}

type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *gomidtrans.Error)
}

// Client implements Gateway against Midtrans: Snap for transaction creation
// and the HTTP status API for reconciliation.
type Client struct {
	snap       snapAPI
	serverKey  string
	statusBase *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway client for the given Midtrans environment.
func NewClient(serverKey string, production bool, statusBaseURL string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(statusBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway status url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway status url must be absolute")
	}

	env := gomidtrans.Sandbox
	if production {
		env = gomidtrans.Production
	}
	var snapClient snap.Client
	snapClient.New(serverKey, env)

	return &Client{
		snap:       &snapClient,
		serverKey:  serverKey,
		statusBase: parsed,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateTransaction opens a Snap transaction and returns the hosted payment
// handles. Missing both token and redirect URL is fatal for the attempt.
func (c *Client) CreateTransaction(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	_ = ctx // the Snap SDK manages its own transport

	snapReq := &snap.Request{
		TransactionDetails: gomidtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &gomidtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]gomidtrans.ItemDetails{
			{
				ID:    req.ProductID,
				Name:  req.ProductName,
				Price: req.Amount,
				Qty:   1,
			},
		},
		EnabledPayments: enabledPayments(req.PaymentMethod),
	}
	if req.PaymentMethod == model.PaymentMethodCreditCard {
		snapReq.CreditCard = &snap.CreditCardDetails{Secure: true}
	}

	resp, snapErr := c.snap.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, fmt.Errorf("snap create transaction: %w", snapErr)
	}
	if resp.Token == "" && resp.RedirectURL == "" {
		return nil, domainErrors.ErrNoPaymentURL
	}

	return &CreateResult{SnapToken: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func enabledPayments(method model.PaymentMethod) []snap.SnapPaymentType {
	switch method {
	case model.PaymentMethodEwallet:
		return []snap.SnapPaymentType{snap.PaymentTypeGopay, snap.PaymentTypeShopeepay}
	case model.PaymentMethodCreditCard:
		return []snap.SnapPaymentType{snap.PaymentTypeCreditCard}
	case model.PaymentMethodBankTransfer:
		return []snap.SnapPaymentType{snap.PaymentTypeBankTransfer}
	default:
		return nil
	}
}

// statusEnvelope tolerates both response shapes the status API is known to
// produce: flat fields and the same fields nested under "data".
type statusEnvelope struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type"`
	StatusCode        string `json:"status_code"`
	Data              *struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		PaymentType       string `json:"payment_type"`
	} `json:"data"`
}

// FetchStatus queries the gateway for the transaction's current status.
func (c *Client) FetchStatus(ctx context.Context, orderID string) (*model.TransactionState, error) {
	endpoint := *c.statusBase
	endpoint.Path = path.Join(endpoint.Path, url.PathEscape(orderID), "status")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		state, err := normalizeStatus(body)
		if err != nil {
			return nil, err
		}
		if state.OrderID == "" {
			state.OrderID = orderID
		}
		return state, nil
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway status request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway status error: %s", resp.Status)
	}
}

// normalizeStatus collapses both known envelope shapes into one canonical
// transaction state.
func normalizeStatus(body []byte) (*model.TransactionState, error) {
	var envelope statusEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode gateway status: %w", err)
	}

	orderID := envelope.OrderID
	status := envelope.TransactionStatus
	paymentType := envelope.PaymentType
	if envelope.Data != nil && envelope.Data.TransactionStatus != "" {
		orderID = envelope.Data.OrderID
		status = envelope.Data.TransactionStatus
		paymentType = envelope.Data.PaymentType
	}

	// Midtrans reports unknown orders with an embedded 404 code and HTTP 200.
	if envelope.StatusCode == "404" {
		return nil, ErrTransactionNotFound
	}
	if status == "" {
		return nil, fmt.Errorf("gateway status missing transaction_status")
	}

	return &model.TransactionState{
		OrderID:     orderID,
		Status:      model.TransactionStatus(strings.ToLower(status)),
		PaymentType: paymentType,
	}, nil
}
