package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"eventtickets/entity"
)

type postTicketsRequest struct {
	EventID       string  `json:"eventId" validate:"required"`
	Email         string  `json:"email" validate:"required"`
	Tickets       int     `json:"tickets" validate:"gte=1"`
	UserID        string  `json:"userId"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	PaidAmount    float64 `json:"paidAmount" validate:"gt=0"`
}

type postTicketsResponse struct {
	Message  string `json:"message"`
	QR       string `json:"qr"`
	TicketID string `json:"ticketId"`
}

type ticketsResponse struct {
	Tickets []entity.TicketWithEvent `json:"tickets"`
}

func (s Server) PostTickets(c echo.Context) error {
	var request postTicketsRequest
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

	userID := request.UserID
	if userID == "" {
		userID = userIDFromContext(c)
	}

	ticket, err := s.bookingService.Book(c.Request().Context(), entity.BookingRequest{
		EventID:        request.EventID,
		UserID:         userID,
		Email:          request.Email,
		Quantity:       request.Tickets,
		PaymentMethod:  request.PaymentMethod,
		PaidAmount:     request.PaidAmount,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return respondBookingError(c, err)
	}

	return c.JSON(http.StatusCreated, postTicketsResponse{
		Message:  "Tickets booked successfully",
		QR:       ticket.QR,
		TicketID: ticket.ID,
	})
}

func (s Server) GetUserTickets(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return respondError(c, http.StatusUnauthorized, "User not authenticated")
	}

	return s.userTickets(c, userID)
}

func (s Server) GetMyTickets(c echo.Context) error {
	return s.userTickets(c, userIDFromContext(c))
}

func (s Server) userTickets(c echo.Context, userID string) error {
	tickets, err := s.ticketsRepo.FindByUserID(c.Request().Context(), userID)
	if err != nil {
		return fmt.Errorf("could not get tickets: %w", err)
	}

	return c.JSON(http.StatusOK, ticketsResponse{Tickets: tickets})
}

func (s Server) GetEmailTickets(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return respondError(c, http.StatusBadRequest, "Email is required")
	}

	tickets, err := s.ticketsRepo.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return fmt.Errorf("could not get tickets: %w", err)
	}

	return c.JSON(http.StatusOK, ticketsResponse{Tickets: tickets})
}
