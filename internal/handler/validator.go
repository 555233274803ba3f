package handler

import (
    "reflect"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
)

// dateTimeLayouts are the accepted ISO-8601 forms.  RFC 3339 parsing also
// accepts fractional seconds; zone-less values are read as UTC.
var dateTimeLayouts = []string{
    time.RFC3339,
    "2006-01-02T15:04:05",
}

// ParseDateTime parses an ISO-8601 timestamp and returns it in UTC.
func ParseDateTime(s string) (time.Time, error) {
    var firstErr error
    for _, layout := range dateTimeLayouts {
        t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC)
        if err == nil {
            return t.UTC(), nil
        }
        if firstErr == nil {
            firstErr = err
        }
    }
    return time.Time{}, firstErr
}

// Validator plugs go-playground/validator into echo so handlers can call
// c.Validate on request bodies.  Field names in errors use the JSON names.
type Validator struct {
    v *validator.Validate
}

// NewValidator returns a Validator with the isodatetime tag registered.
func NewValidator() *Validator {
    v := validator.New()
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "-" {
            return ""
        }
        return name
    })
    _ = v.RegisterValidation("isodatetime", func(fl validator.FieldLevel) bool {
        _, err := ParseDateTime(fl.Field().String())
        return err == nil
    })
    return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
    return cv.v.Struct(i)
}

// describe turns validator errors into short per-field messages.
func describe(err error) []string {
    verrs, ok := err.(validator.ValidationErrors)
    if !ok {
        return []string{err.Error()}
    }
    out := make([]string, 0, len(verrs))
    for _, fe := range verrs {
        switch fe.Tag() {
        case "required":
            out = append(out, fe.Field()+" is required")
        case "min":
            if fe.Kind() == reflect.String {
                out = append(out, fe.Field()+" must not be empty")
            } else {
                out = append(out, fe.Field()+" must be at least "+fe.Param())
            }
        case "max":
            out = append(out, fe.Field()+" must be at most "+fe.Param())
        case "isodatetime":
            out = append(out, fe.Field()+" must be an ISO-8601 datetime")
        default:
            out = append(out, fe.Field()+" failed "+fe.Tag())
        }
    }
    return out
}
