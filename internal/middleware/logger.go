package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"brandlink/internal/pkg/ids"
	"brandlink/internal/pkg/response"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestLogger assigns a request id and writes one access log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = ids.New()
		}
		c.Set(ctxRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int64("user_id", c.GetInt64(CtxUserID)).
			Str("role", c.GetString(CtxRole)).
			Str("request_id", rid).
			Msg("request")
	}
}

// ErrorLogger logs detailed error information and recovers from panics.
// Panics and 5xx responses are forwarded to Sentry when a client is configured.
func ErrorLogger(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				stack := debug.Stack()
				logRequestError(c, start, "panic", err.Error(), stack)
				reportToSentry(c, err)

				if production {
					response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
					return
				}
				response.ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error (panic)", gin.H{
					"panic": err.Error(),
					"stack": string(stack),
				})
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(c, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()), nil)
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", err.Type), err.Error(), nil)
				if c.Writer.Status() >= http.StatusInternalServerError {
					reportToSentry(c, err.Err)
				}
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType string, message string, stack []byte) {
	ev := log.Error().
		Str("type", errType).
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Str("client_ip", c.ClientIP()).
		Int64("user_id", c.GetInt64(CtxUserID)).
		Str("role", c.GetString(CtxRole)).
		Str("request_id", RequestID(c)).
		Dur("latency", time.Since(start))
	if stack != nil {
		ev = ev.Bytes("stack", stack)
	}
	ev.Msg(message)
}

func reportToSentry(c *gin.Context, err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(c.Request)
	hub.Scope().SetTag("request_id", RequestID(c))
	hub.Scope().SetUser(sentry.User{ID: fmt.Sprint(c.GetInt64(CtxUserID))})
	hub.CaptureException(err)
}

func RequestID(c *gin.Context) string {
	if v := c.GetString(ctxRequestID); v != "" {
		return v
	}
	return c.GetHeader(HeaderRequestID)
}
