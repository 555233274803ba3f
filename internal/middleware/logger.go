package middleware

import (
    "github.com/google/uuid"
    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
)

// RequestID tags each request with a UUID in X-Request-ID unless the
// client supplied one.
func RequestID() echo.MiddlewareFunc {
    return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
        Generator: uuid.NewString,
    })
}

// RequestLogger writes one hclog line per request.  Server errors log at
// error level, client errors at warn and the rest at info.
func RequestLogger(log hclog.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
            args := []any{
                "method", v.Method,
                "uri", v.URI,
                "status", v.Status,
                "latency", v.Latency,
                "remote_ip", v.RemoteIP,
                "request_id", v.RequestID,
            }
            switch {
            case v.Error != nil:
                log.Error("request", append(args, "error", v.Error)...)
            case v.Status >= 500:
                log.Error("request", args...)
            case v.Status >= 400:
                log.Warn("request", args...)
            default:
                log.Info("request", args...)
            }
            return nil
        },
    })
}
