package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/server/http/dto"
)

// NotificationHandler manages notification endpoints.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// PaymentSuccess handles POST /api/notifications/payment-success.
func (h *NotificationHandler) PaymentSuccess(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.PaymentSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.RecordPaymentSuccess(c.Request.Context(), userID, req.OrderID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusAccepted)
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	notifications, err := h.facade.Notifications(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(notifications) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponse{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
