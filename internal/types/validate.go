//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the fields of a record that broke their rules.
type ValidationError struct {
	Record string
	Fields []FieldError
}

// FieldError is a single failed rule.
type FieldError struct {
	Field string
	Rule  string
	Value interface{}
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid %s:", e.Record))
	for _, f := range e.Fields {
		sb.WriteString(fmt.Sprintf(" %s failed %q;", f.Field, f.Rule))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func validateStruct(record interface{}) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{
		Record: strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", record), "*types.")),
		Fields: make([]FieldError, 0, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return verr
}

// Now returns the current time in UTC at millisecond precision,
// matching the timestamps written to collection documents.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
