package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s Server) GetSales(c echo.Context) error {
	sales, err := s.salesReadModel.SalesReport(c.Request().Context())
	if err != nil {
		return fmt.Errorf("could not get sales report: %w", err)
	}

	return c.JSON(http.StatusOK, sales)
}
