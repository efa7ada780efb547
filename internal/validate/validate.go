package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// Indian GSTIN: state code, PAN, entity number, 'Z', checksum
	reGSTIN = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	// plain decimal notation only; exponents and signs are rejected before parsing
	reDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	reID      = regexp.MustCompile(`^[0-9]{1,18}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report json field names in messages
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, ok := Decimal(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return reGSTIN.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates s against its `validate` tags.
func Struct(s any) error { return v.Struct(s) }

// Message renders the first field failure of a validator error for API clients.
func Message(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "Invalid input data"
	}
	fe := ves[0]
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "amount":
		return field + " must be a non-negative decimal number"
	case "gstin":
		return field + " must be a valid 15-character GSTIN"
	case "phone":
		return field + " must be a valid phone number"
	default:
		return field + " is invalid"
	}
}

// Amount is a monetary value decoded from either a JSON string or a JSON number.
// The submitted text is preserved so "199.99" is stored as "199.99", never as a float.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(str))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Decimal checks that s is a non-negative plain decimal and returns it trimmed.
func Decimal(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 32 || !reDecimal.MatchString(s) {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return "", false
	}
	return s, true
}

// ID validates a numeric path identifier.
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// GSTIN normalizes a GST number for validation and storage.
func GSTIN(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// Phone strips common separators from a phone number.
func Phone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}
