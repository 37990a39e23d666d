package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValidateConformingPayload(t *testing.T) {
	payload := map[string]interface{}{
		"idProducto":  "123",
		"descripcion": "Anillo",
		"precio":      100.0,
	}

	violations := Validate(payload, ProductSchema)
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing idProducto", map[string]interface{}{"descripcion": "x", "precio": 1.0}},
		{"missing descripcion", map[string]interface{}{"idProducto": "1", "precio": 1.0}},
		{"missing precio", map[string]interface{}{"idProducto": "1", "descripcion": "x"}},
		{"empty payload", map[string]interface{}{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations := Validate(tc.payload, ProductSchema)
			if len(violations) == 0 {
				t.Error("expected violations, got none")
			}
			for _, v := range violations {
				if v.Property == "" || v.Message == "" {
					t.Errorf("violation missing property or message: %+v", v)
				}
			}
		})
	}
}

func TestValidateRejectsWrongPrimitiveTypes(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{
			// A numeric string is not a number.
			"numeric string where number declared",
			map[string]interface{}{"idProducto": "1", "descripcion": "x", "precio": "100"},
			"precio",
		},
		{
			// A number is not a string.
			"number where string declared",
			map[string]interface{}{"idProducto": 123.0, "descripcion": "x", "precio": 100.0},
			"idProducto",
		},
		{
			"boolean matches neither kind",
			map[string]interface{}{"idProducto": "1", "descripcion": true, "precio": 100.0},
			"descripcion",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations := Validate(tc.payload, ProductSchema)
			if len(violations) != 1 {
				t.Fatalf("expected exactly 1 violation, got %v", violations)
			}
			if violations[0].Property != tc.field {
				t.Errorf("expected violation on %s, got %s", tc.field, violations[0].Property)
			}
		})
	}
}

func TestViolationsNameTheFieldAndTheExpectation(t *testing.T) {
	// Required violations are reported against the document root with
	// the field name in the details; type violations against the field
	// itself. Both must surface the offending property.
	violations := Validate(map[string]interface{}{
		"descripcion": "x",
		"precio":      "100",
	}, ProductSchema)

	byProperty := map[string]string{}
	for _, v := range violations {
		byProperty[v.Property] = v.Message
	}

	if msg, ok := byProperty["idProducto"]; !ok || !strings.Contains(msg, "required") {
		t.Errorf("missing field should report a required violation, got %v", violations)
	}
	if msg, ok := byProperty["precio"]; !ok || !strings.Contains(msg, "number") {
		t.Errorf("type violation should name the declared type, got %v", violations)
	}
}

func TestValidateLoanSchema(t *testing.T) {
	violations := Validate(map[string]interface{}{"idProducto": "123", "gramaje": 10.0}, LoanSchema)
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}

	violations = Validate(map[string]interface{}{"idProducto": "123", "gramaje": "10"}, LoanSchema)
	if len(violations) != 1 {
		t.Errorf("expected one violation for string gramaje, got %v", violations)
	}
}

func TestValidateUndeclaredFieldsAreIgnored(t *testing.T) {
	payload := map[string]interface{}{
		"idProducto": "123",
		"gramaje":    10.0,
		"extra":      true,
	}
	if violations := Validate(payload, LoanSchema); len(violations) != 0 {
		t.Errorf("undeclared fields must not violate the schema: %v", violations)
	}
}

func TestDecodeAndValidateRejectsNonObjectBody(t *testing.T) {
	_, _, err := DecodeAndValidate(bytes.NewBufferString(`[1,2,3]`), LoanSchema)
	if err == nil {
		t.Error("expected a decode error for a non-object body")
	}
}

func TestProperty_ConformingPayloadsAlwaysPass(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("payloads built to the schema never violate it", prop.ForAll(
		func(id string, descripcion string, precio float64) bool {
			body, _ := json.Marshal(map[string]interface{}{
				"idProducto":  id,
				"descripcion": descripcion,
				"precio":      precio,
			})

			_, violations, err := DecodeAndValidate(bytes.NewReader(body), ProductSchema)
			return err == nil && len(violations) == 0
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DroppingARequiredFieldAlwaysFails(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("removing any required field yields a violation on that field", prop.ForAll(
		func(dropped int) bool {
			fields := []string{"idProducto", "descripcion", "precio"}
			payload := map[string]interface{}{
				"idProducto":  "1",
				"descripcion": "x",
				"precio":      1.0,
			}
			target := fields[dropped%len(fields)]
			delete(payload, target)

			violations := Validate(payload, ProductSchema)
			if len(violations) != 1 {
				return false
			}
			return violations[0].Property == target
		},
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
