package handler

import (
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-booking/internal/service"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
    Error   string   `json:"error"`
    Details []string `json:"details,omitempty"`
}

func badRequest(c echo.Context, msg string, details ...string) error {
    return c.JSON(http.StatusBadRequest, errorBody{Error: msg, Details: details})
}

// fail writes the response for an error returned by a service.  Rule
// violations map to 404/409/400; anything else is logged and hidden
// behind a 500.
func fail(c echo.Context, log hclog.Logger, err error) error {
    var se *service.Error
    if errors.As(err, &se) {
        status := http.StatusInternalServerError
        switch se.Kind {
        case service.KindNotFound:
            status = http.StatusNotFound
        case service.KindConflict:
            status = http.StatusConflict
        case service.KindValidation:
            status = http.StatusBadRequest
        }
        return c.JSON(status, errorBody{Error: se.Message})
    }
    log.Error("request failed", "method", c.Request().Method, "path", c.Path(),
        "request_id", c.Response().Header().Get(echo.HeaderXRequestID), "error", err)
    return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
}

// bind decodes the JSON body into dst, rejecting unknown fields and
// trailing data, then runs the registered validator.  It writes the 400
// response itself and reports whether the handler should continue.
func bind(c echo.Context, dst any) (bool, error) {
    dec := json.NewDecoder(c.Request().Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(dst); err != nil {
        return false, badRequest(c, "invalid request body", decodeDetail(err))
    }
    if _, err := dec.Token(); !errors.Is(err, io.EOF) {
        return false, badRequest(c, "invalid request body", "body must contain a single JSON object")
    }
    if err := c.Validate(dst); err != nil {
        return false, badRequest(c, "validation failed", describe(err)...)
    }
    return true, nil
}

func decodeDetail(err error) string {
    var typeErr *json.UnmarshalTypeError
    var syntaxErr *json.SyntaxError
    switch {
    case errors.As(err, &typeErr):
        return fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type)
    case errors.As(err, &syntaxErr):
        return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
    case errors.Is(err, io.EOF):
        return "body is empty"
    }
    return err.Error()
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}
