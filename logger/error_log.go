package logger

import (
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLog contains structured information about an error occurrence.
type ErrorLog struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Method     string                 `json:"method,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	StackTrace string                 `json:"stack_trace,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// LogHTTPError logs an HTTP request error with context from a gin.Context.
// It is the operator-facing side of the error taxonomy: store faults land
// here with their underlying cause, while the client only sees the generic
// envelope message.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	errorLog := ErrorLog{
		Timestamp:  time.Now().UTC(),
		Level:      "error",
		Message:    message,
		StatusCode: statusCode,
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		IPAddress:  c.ClientIP(),
		RequestID:  c.GetString("request_id"),
	}

	// Stack traces only outside production; they are noisy and expensive.
	if os.Getenv("ENVIRONMENT") != "production" {
		errorLog.StackTrace = getStackTrace(3)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status_code", errorLog.StatusCode),
		zap.String("path", errorLog.Path),
		zap.String("method", errorLog.Method),
		zap.String("client_ip", errorLog.IPAddress),
		zap.Any("headers", filterSensitiveHeaders(c.Request.Header)),
	}
	if errorLog.RequestID != "" {
		fields = append(fields, zap.String("request_id", errorLog.RequestID))
	}
	if errorLog.StackTrace != "" {
		fields = append(fields, zap.String("stack_trace", errorLog.StackTrace))
	}

	log.Desugar().Error(message, fields...)
}

// getStackTrace captures a stack trace starting from the specified skip level.
func getStackTrace(skip int) string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "runtime.") {
			builder.WriteString(frame.Function)
			builder.WriteString("\n\t")
			builder.WriteString(frame.File)
			builder.WriteString(":")
			builder.WriteString(strconv.Itoa(frame.Line))
			builder.WriteString("\n")
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// filterSensitiveHeaders removes sensitive information from headers before logging.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string)

	for name, values := range headers {
		if strings.EqualFold(name, "Authorization") ||
			strings.EqualFold(name, "Cookie") ||
			strings.Contains(strings.ToLower(name), "key") ||
			strings.Contains(strings.ToLower(name), "secret") {
			filtered[name] = "[REDACTED]"
			continue
		}

		if len(values) > 0 {
			filtered[name] = values[0]
		}
	}

	return filtered
}
