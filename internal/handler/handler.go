package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pustakalaya/intake-service/internal/errs"
	"github.com/pustakalaya/intake-service/internal/model"
	md "github.com/pustakalaya/intake-service/pkg/middleware"
	"github.com/pustakalaya/intake-service/pkg/validate"
)

type Handler struct {
	svc IntakeService
	log *zap.Logger
}

func New(svc IntakeService, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.HTTPErrorHandler = h.errorHandler
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/add_books", h.AddBooks)
	api.POST("/login", h.Login)
	api.GET("/search_user", h.SearchUser)
	api.POST("/upload_certificate", h.UploadCertificate, middleware.BodyLimit("6M"))

	return e
}

// response is the envelope every endpoint answers with.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c echo.Context, msg string, data interface{}) error {
	return c.JSON(http.StatusOK, response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// errorHandler shapes every error, including router 404/405, into the envelope.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}
	if err := c.JSON(code, response{Success: false, Message: msg}); err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) AddBooks(c echo.Context) error {
	var req model.AddBooksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.AddBooks(c.Request().Context(), req)
	if err != nil {
		return h.mapError(err)
	}
	return ok(c, "books added successfully", resp)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	resp, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return h.mapError(err)
	}
	return ok(c, "login successful", resp)
}

func (h *Handler) SearchUser(c echo.Context) error {
	donor, err := h.svc.SearchDonor(c.Request().Context(), c.QueryParam("mobile"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found with this mobile number")
		}
		return h.mapError(err)
	}
	return ok(c, "user found", donor)
}

func (h *Handler) UploadCertificate(c echo.Context) error {
	fh, err := c.FormFile("certificate")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded or upload error")
	}

	res, err := h.svc.SaveCertificate(fh)
	if err != nil {
		return h.mapError(err)
	}
	return ok(c, "certificate uploaded successfully", res)
}

// mapError translates service errors to enveloped statuses. Internal
// failures are logged here and surfaced as a generic message.
func (h *Handler) mapError(err error) error {
	switch {
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrDuplicateMobile),
		errors.Is(err, errs.ErrDuplicateISBN),
		errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrDonorNotFound),
		errors.Is(err, errs.ErrLibrarianNotFound),
		errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		h.log.Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
