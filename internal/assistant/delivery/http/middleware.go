package http

import (
	"errors"
	"fmt"
	"net/http"

	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewServer creates an Echo instance with the service middleware stack and
// error handler installed.
func NewServer(log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(RequestContext())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	return e
}

// RequestContext copies the request id into the request context so the
// context-aware log helpers pick it up.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

// RequestLogger writes one access log line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.DurationField("latency", v.Latency),
			}
			if v.Error != nil {
				log.WarnContext(c.Request().Context(), "HTTP request failed", append(fields, logger.ErrorField(v.Error))...)
				return nil
			}
			log.InfoContext(c.Request().Context(), "HTTP request", fields...)
			return nil
		},
	})
}

// ErrorHandler renders every error as a dto.ErrorResponse.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			log.ErrorContext(c.Request().Context(), "Unhandled request error", logger.ErrorField(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, dto.ErrorResponse{Error: http.StatusText(code), Message: message})
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "Failed to write error response", logger.ErrorField(err))
		}
	}
}
