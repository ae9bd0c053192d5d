package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventtickets/entity"
)

type postEventRequest struct {
	Name             string  `json:"name" validate:"required"`
	Date             string  `json:"date" validate:"eventdate"`
	Location         string  `json:"location" validate:"required"`
	Description      string  `json:"description" validate:"min=10"`
	AvailableTickets int     `json:"availableTickets" validate:"gte=1"`
	MaxPerPerson     int     `json:"maxPerPerson" validate:"gte=1"`
	Price            float64 `json:"price" validate:"gte=0"`
}

type postEventResponse struct {
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

func (s Server) GetEvents(c echo.Context) error {
	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return respondError(c, http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	events, err := s.eventsRepo.FindAll(c.Request().Context(), limit)
	if err != nil {
		return fmt.Errorf("could not get events: %w", err)
	}

	return c.JSON(http.StatusOK, events)
}

func (s Server) GetEvent(c echo.Context) error {
	eventID := c.Param("id")
	if !s.validator.IsUUID(eventID) {
		return respondError(c, http.StatusBadRequest, "Invalid event ID")
	}

	event, err := s.eventsRepo.Get(c.Request().Context(), eventID)
	if errors.Is(err, entity.ErrNotFound) {
		return respondError(c, http.StatusNotFound, "Event not found")
	}
	if err != nil {
		return fmt.Errorf("could not get event: %w", err)
	}

	return c.JSON(http.StatusOK, event)
}

func (s Server) PostEvent(c echo.Context) error {
	var request postEventRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if err := c.Validate(request); err != nil {
		details, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return respondValidationFailed(c, "Validation failed", details)
	}

	date, _ := entity.ParseEventDate(request.Date)

	event := entity.Event{
		ID:               uuid.NewString(),
		Name:             request.Name,
		Date:             date,
		Location:         request.Location,
		Description:      request.Description,
		AvailableTickets: request.AvailableTickets,
		MaxPerPerson:     request.MaxPerPerson,
		Price:            request.Price,
	}

	if err := s.eventsRepo.Add(c.Request().Context(), event); err != nil {
		return fmt.Errorf("could not add event: %w", err)
	}

	return c.JSON(http.StatusCreated, postEventResponse{
		Message: "Event created successfully",
		EventID: event.ID,
	})
}
