package queue

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// The patient role cannot view queues.
	g := api.Group("", auth.RequireRole("doctor", "staff"))
	g.GET("/queue", h.ActiveQueue)
	g.GET("/queue/return", h.ReturnQueue)
	g.GET("/dashboard/stats", h.Dashboard)
}

func (h *Handler) ActiveQueue(c echo.Context) error {
	q, err := h.svc.ActiveQueue(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) ReturnQueue(c echo.Context) error {
	q, err := h.svc.ReturnQueue(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) Dashboard(c echo.Context) error {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		}
		day = parsed
	}
	stats, err := h.svc.Dashboard(c.Request().Context(), day)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
