package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
	"github.com/workhive/paymentd/internal/server/http/dto"
)

// PaymentHandler manages checkout and payment reconciliation endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /api/payment/midtrans/create.
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), userID, model.CheckoutInput{
		Amount:        req.GrossAmount,
		CustomerName:  req.CustomerDetails.FullName,
		CustomerEmail: req.CustomerDetails.Email,
		CustomerPhone: req.CustomerDetails.Phone,
		ProductID:     req.ItemDetails.ID,
		ProductName:   req.ItemDetails.Name,
		PaymentMethod: model.PaymentMethod(req.PaymentType),
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrInvalidCustomer),
			errors.Is(err, domainErrors.ErrInvalidProduct),
			errors.Is(err, domainErrors.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, domainErrors.ErrNoPaymentURL):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Success: true,
		Data: dto.CheckoutData{
			OrderID:     order.ID,
			SnapToken:   order.SnapToken,
			RedirectURL: order.RedirectURL,
		},
	})
}

// Status handles GET /api/payment/midtrans/status/:orderID.
func (h *PaymentHandler) Status(c *gin.Context) {
	orderID := c.Param("orderID")

	state, err := h.facade.CheckStatus(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Success: true,
		Data: dto.StatusData{
			OrderID:           state.OrderID,
			TransactionStatus: string(state.Status),
			PaymentType:       state.PaymentType,
		},
	})
}

// PageEvent handles POST /api/payment/midtrans/events.
func (h *PaymentHandler) PageEvent(c *gin.Context) {
	var req dto.PageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.URL == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	hint, acted, err := h.facade.ReportPaymentPageEvent(c.Request.Context(), req.OrderID, req.URL)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PageEventResponse{Hint: hint.String(), Acted: acted})
}

// StartPoll handles POST /api/payment/midtrans/poll/:orderID.
func (h *PaymentHandler) StartPoll(c *gin.Context) {
	orderID := c.Param("orderID")

	if err := h.facade.StartPoll(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderCompleted):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusAccepted)
}

// CancelPoll handles DELETE /api/payment/midtrans/poll/:orderID.
func (h *PaymentHandler) CancelPoll(c *gin.Context) {
	if !h.facade.CancelPoll(c.Param("orderID")) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus handles PUT /api/payment/orders/:orderID/status.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("orderID")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrderStatus):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderCompleted):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
