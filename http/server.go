package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"eventtickets/entity"
)

type EventsRepository interface {
	Add(ctx context.Context, event entity.Event) error
	Get(ctx context.Context, eventID string) (entity.Event, error)
	FindAll(ctx context.Context, limit int) ([]entity.Event, error)
}

type TicketsRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]entity.TicketWithEvent, error)
	FindByEmail(ctx context.Context, email string) ([]entity.TicketWithEvent, error)
}

type PaymentsRepository interface {
	Add(ctx context.Context, payment entity.Payment) error
}

type SalesReadModel interface {
	SalesReport(ctx context.Context) ([]entity.EventSales, error)
}

type BookingService interface {
	Book(ctx context.Context, req entity.BookingRequest) (entity.Ticket, error)
}

type Server struct {
	addr           string
	e              *echo.Echo
	eventsRepo     EventsRepository
	ticketsRepo    TicketsRepository
	paymentsRepo   PaymentsRepository
	salesReadModel SalesReadModel
	bookingService BookingService
	validator      *requestValidator
}

type ServerConfig struct {
	Addr string
	// SecureCookies marks the identity cookie as Secure.
	SecureCookies bool
}

func NewServer(
	config ServerConfig,
	eventsRepo EventsRepository,
	ticketsRepo TicketsRepository,
	paymentsRepo PaymentsRepository,
	salesReadModel SalesReadModel,
	bookingService BookingService,
) *Server {
	e := echoHTTP.NewEcho()

	validator := newRequestValidator()
	e.Validator = validator

	e.Use(otelecho.Middleware("eventtickets"))
	e.Use(identityMiddleware(config.SecureCookies))

	server := &Server{
		addr:           config.Addr,
		e:              e,
		eventsRepo:     eventsRepo,
		ticketsRepo:    ticketsRepo,
		paymentsRepo:   paymentsRepo,
		salesReadModel: salesReadModel,
		bookingService: bookingService,
		validator:      validator,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	api.GET("/events", server.GetEvents)
	api.GET("/events/:id", server.GetEvent)
	api.POST("/events", server.PostEvent)

	api.POST("/tickets", server.PostTickets)
	api.GET("/tickets/me", server.GetMyTickets)
	api.GET("/tickets/user/:userId", server.GetUserTickets)
	api.GET("/tickets/email/:email", server.GetEmailTickets)

	api.POST("/payment", server.PostPayment)

	api.GET("/sales", server.GetSales)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(context.Background())
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ServeHTTP exposes the router, so handlers can be exercised without a listener.
func (s Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
