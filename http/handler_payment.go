package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventtickets/entity"
)

type postPaymentRequest struct {
	UserID  string  `json:"userId" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
	EventID string  `json:"eventId" validate:"required"`
	Tickets int     `json:"tickets" validate:"gt=0"`
}

type postPaymentResponse struct {
	Message   string `json:"message"`
	PaymentID string `json:"paymentId"`
}

// PostPayment records a payment without charging anything.
func (s Server) PostPayment(c echo.Context) error {
	var request postPaymentRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if err := c.Validate(request); err != nil {
		details, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return respondValidationFailed(c, "Missing required fields", details)
	}

	payment := entity.Payment{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		EventID:   request.EventID,
		Amount:    request.Amount,
		Tickets:   request.Tickets,
		Status:    entity.PaymentStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.paymentsRepo.Add(c.Request().Context(), payment); err != nil {
		return fmt.Errorf("could not add payment: %w", err)
	}

	return c.JSON(http.StatusCreated, postPaymentResponse{
		Message:   "Payment successful",
		PaymentID: payment.ID,
	})
}
