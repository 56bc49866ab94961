package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/randomtoy/planar-go/internal/app"
	"github.com/randomtoy/planar-go/internal/domain"
)

const (
	defaultDeckSize = 10
	maxDeckSize     = 100
)

type Handler struct {
	svc *app.PlanarService
}

func NewHandler(svc *app.PlanarService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	g := e.Group("/deck", middleware.CORS())
	g.POST("/generate", h.GenerateDeck)
	g.GET("/:deckId", h.GetDeck)
	g.POST("/:deckId/next", h.NextCard)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GenerateDeck(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	size := defaultDeckSize
	if req.Size != nil {
		size = *req.Size
	}
	if size < 1 || size > maxDeckSize {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "size must be an integer between 1 and 100"})
	}
	phenomena := true
	if req.Phenomena != nil {
		phenomena = *req.Phenomena
	}

	deck, err := h.svc.Generate(c.Request().Context(), size, phenomena)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDeckInfo(deck))
}

func (h *Handler) GetDeck(c echo.Context) error {
	deck, err := h.svc.Get(c.Request().Context(), c.Param("deckId"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDeckInfo(deck))
}

func (h *Handler) NextCard(c echo.Context) error {
	sel := domain.NoSelection
	if raw := c.QueryParam("selectedCardId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "selectedCardId must be an integer"})
		}
		sel = domain.Select(id)
	}

	deck, err := h.svc.Next(c.Request().Context(), c.Param("deckId"), sel)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDeckInfo(deck))
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrDeckNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrDeckNotFound.Error()})
	case errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrInsufficientCatalog),
		errors.Is(err, domain.ErrInvalidSelection):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyDeck), errors.Is(err, domain.ErrDeckConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		slog.Error("card catalog failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "card catalog unavailable"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
