// Package validation checks decoded JSON bodies against per-entity field tables.
//
// Each entity has one Schema listing its fields with a type, a required flag
// and a go-playground/validator rule string. Handlers never see a body that
// failed its schema.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the JSON type a field must carry
type Kind int

const (
	String  Kind = iota // JSON string
	Number              // any JSON number
	Integer             // JSON number without a fractional part
	ID                  // JSON string holding a UUID
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "a number"
	case Integer:
		return "an integer"
	case ID:
		return "an id"
	default:
		return "a string"
	}
}

// Field is one row of a schema table
type Field struct {
	Name     string // JSON key
	Kind     Kind   // Expected JSON type
	Required bool   // Must be present and non-null
	Rules    string // validator tag applied to the value, e.g. "min=3,max=100"
	Message  string // Reported when Rules fail
}

// Schema is the field table for one request body
type Schema struct {
	Name   string
	Fields []Field
}

// Partial returns a copy of s where every field is optional. Supplied fields
// are still type- and rule-checked.
func (s Schema) Partial() Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Required = false
		fields[i] = f
	}
	return Schema{Name: s.Name + ".partial", Fields: fields}
}

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of rejected fields of one body
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator runs schemas through a shared validator engine
type Validator struct {
	engine *validator.Validate
}

func New() *Validator {
	return &Validator{engine: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks body against s and returns nil when every field passes.
// Keys not listed in s are ignored.
func (v *Validator) Validate(s Schema, body map[string]any) Errors {
	var errs Errors
	for _, f := range s.Fields {
		raw, ok := body[f.Name]
		if !ok || raw == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: f.Name + " is required"})
			}
			continue
		}
		value, ok := coerce(f.Kind, raw)
		if !ok {
			errs = append(errs, FieldError{Field: f.Name, Message: fmt.Sprintf("%s must be %s", f.Name, f.Kind)})
			continue
		}
		rules := f.Rules
		if f.Kind == ID {
			rules = joinRules("uuid", rules)
		}
		if rules == "" {
			continue
		}
		if err := v.engine.Var(value, rules); err != nil {
			msg := f.Message
			if msg == "" {
				msg = fmt.Sprintf("%s is invalid", f.Name)
			}
			errs = append(errs, FieldError{Field: f.Name, Message: msg})
		}
	}
	return errs
}

func coerce(kind Kind, raw any) (any, bool) {
	switch kind {
	case Number:
		n, ok := raw.(float64)
		return n, ok
	case Integer:
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, false
		}
		return n, true
	default:
		s, ok := raw.(string)
		return s, ok
	}
}

func joinRules(a, b string) string {
	if b == "" {
		return a
	}
	return a + "," + b
}
