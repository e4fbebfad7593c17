package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rl1809/ecoscene/internal/core/catalog"
	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/service"
)

type HTTPHandler struct {
	cartService  *service.CartService
	orderService *service.OrderService
	logger       zerolog.Logger
}

type CheckoutHTTPRequest struct {
	RequestID string `json:"request_id"`
	Currency  string `json:"currency"`
}

type CheckoutHTTPResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *domain.Order `json:"order,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(cartService *service.CartService, orderService *service.OrderService, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		cartService:  cartService,
		orderService: orderService,
		logger:       logger.With().Str("component", "http").Logger(),
	}
}

func (h *HTTPHandler) Register(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)

	api := e.Group("/api")
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/quote", h.Quote)

	carts := api.Group("/carts/:user")
	carts.GET("", h.GetCart)
	carts.DELETE("", h.ClearCart)
	carts.POST("/items", h.AddItem)
	carts.PUT("/items/:product", h.UpdateItem)
	carts.DELETE("/items/:product", h.RemoveItem)
	carts.POST("/checkout", h.Checkout)

	api.GET("/orders/:id", h.GetOrder)
}

func (h *HTTPHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ListProducts --> GET /api/products?q=&category=&certification=&min_price=&max_price=&sort=
func (h *HTTPHandler) ListProducts(c echo.Context) error {
	filter, key, err := parseFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	products, err := h.cartService.Products(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, catalog.Apply(products, filter, key))
}

func (h *HTTPHandler) GetProduct(c echo.Context) error {
	p, err := h.cartService.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Quote prices an ad-hoc list of lines --> POST /api/quote
func (h *HTTPHandler) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return h.writeError(c, err)
	}

	q, err := h.cartService.QuoteLines(c.Request().Context(), toLines(req.Items), currency)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.writeQuote(c, q)
}

// GetCart --> GET /api/carts/:user?currency=USD
func (h *HTTPHandler) GetCart(c echo.Context) error {
	currency, err := domain.ParseCurrency(c.QueryParam("currency"))
	if err != nil {
		return h.writeError(c, err)
	}

	q, err := h.cartService.Quote(c.Request().Context(), c.Param("user"), currency)
	if err != nil {
		return h.writeError(c, err)
	}
	return h.writeQuote(c, q)
}

func (h *HTTPHandler) AddItem(c echo.Context) error {
	var req LineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing product_id"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := h.cartService.AddItem(c.Request().Context(), c.Param("user"), req.ProductID, req.Quantity); err != nil {
		return h.writeError(c, err)
	}
	return h.GetCart(c)
}

func (h *HTTPHandler) UpdateItem(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if _, err := h.cartService.UpdateQuantity(c.Request().Context(), c.Param("user"), c.Param("product"), req.Quantity); err != nil {
		return h.writeError(c, err)
	}
	return h.GetCart(c)
}

func (h *HTTPHandler) RemoveItem(c echo.Context) error {
	if _, err := h.cartService.RemoveItem(c.Request().Context(), c.Param("user"), c.Param("product")); err != nil {
		return h.writeError(c, err)
	}
	return h.GetCart(c)
}

func (h *HTTPHandler) ClearCart(c echo.Context) error {
	if err := h.cartService.Clear(c.Request().Context(), c.Param("user")); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout --> POST /api/carts/:user/checkout
func (h *HTTPHandler) Checkout(c echo.Context) error {
	var req CheckoutHTTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, CheckoutHTTPResponse{Message: "invalid request body"})
	}
	if req.RequestID == "" {
		return c.JSON(http.StatusBadRequest, CheckoutHTTPResponse{Message: "missing required fields"})
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return h.writeError(c, err)
	}

	order, err := h.orderService.Checkout(c.Request().Context(), req.RequestID, c.Param("user"), currency)
	if err != nil {
		status, message := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("user_id", c.Param("user")).Msg("checkout failed")
		}
		return c.JSON(status, CheckoutHTTPResponse{Message: message})
	}

	return c.JSON(http.StatusAccepted, CheckoutHTTPResponse{
		Success: true,
		Message: "order placed successfully",
		Order:   &order,
	})
}

func (h *HTTPHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *HTTPHandler) writeQuote(c echo.Context, q service.Quote) error {
	resp, err := newQuoteResponse(q)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) writeError(c echo.Context, err error) error {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingPrice),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrItemNotInCart),
		errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, "duplicate request"
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusGone, err.Error()
	case errors.Is(err, service.ErrCheckoutClosed):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func parseFilter(c echo.Context) (domain.Filter, catalog.SortKey, error) {
	f := domain.Filter{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	for _, v := range c.QueryParams()["certification"] {
		for _, label := range strings.Split(v, ",") {
			if label = strings.TrimSpace(label); label != "" {
				f.Certifications = append(f.Certifications, label)
			}
		}
	}

	var err error
	if f.MinPrice, err = parsePrice(c.QueryParam("min_price")); err != nil {
		return f, "", err
	}
	if f.MaxPrice, err = parsePrice(c.QueryParam("max_price")); err != nil {
		return f, "", err
	}

	key, err := catalog.ParseSortKey(c.QueryParam("sort"))
	return f, key, err
}

func parsePrice(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("invalid price bound " + strconv.Quote(s))
	}
	return &v, nil
}
