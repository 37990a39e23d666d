package middleware

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// FieldKind is the declared JSON type of a schema field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
)

func (k FieldKind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// FieldSpec declares a single field of a request schema.
type FieldSpec struct {
	Kind     FieldKind
	Required bool
}

// Schema maps payload field names to their declared specs. It is
// compiled down to a JSON Schema document for validation.
type Schema map[string]FieldSpec

// Violation reports a single schema violation.
type Violation struct {
	Message  string `json:"message"`
	Property string `json:"property"`
}

// document renders the declared fields as a JSON Schema object. JSON
// Schema's string/number types are exact, so a numeric string is never
// accepted where a number is declared and vice versa.
func (s Schema) document() map[string]interface{} {
	properties := make(map[string]interface{}, len(s))
	required := []string{}

	for name, spec := range s {
		properties[name] = map[string]interface{}{"type": spec.Kind.String()}
		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	doc := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// Validate checks a decoded payload against a schema and returns every
// violation found: required fields that are absent, and present fields
// whose JSON type differs from the declared one. Fields the schema
// does not declare are ignored. An empty result means the payload
// conforms. Ordering of violations is not meaningful; callers branch
// on emptiness.
func Validate(payload map[string]interface{}, schema Schema) []Violation {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.document()),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		// Schemas are static; a compile failure is a programming error.
		return []Violation{{Message: err.Error()}}
	}

	violations := []Violation{}
	for _, resultError := range result.Errors() {
		violations = append(violations, Violation{
			Message:  resultError.Description(),
			Property: violatedProperty(resultError),
		})
	}
	return violations
}

// violatedProperty names the offending field. Type violations carry it
// as the error field; required violations are reported against the
// root with the field name in the details.
func violatedProperty(resultError gojsonschema.ResultError) string {
	field := resultError.Field()
	if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
		if property, ok := resultError.Details()["property"].(string); ok {
			return property
		}
	}
	return field
}

// DecodeAndValidate decodes a JSON request body into a payload map and
// validates it against the schema. A body that is not a JSON object is
// a decode error, not a violation.
func DecodeAndValidate(body io.Reader, schema Schema) (map[string]interface{}, []Violation, error) {
	var payload map[string]interface{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, nil, err
	}
	return payload, Validate(payload, schema), nil
}

// ProductSchema is the create-product request schema.
var ProductSchema = Schema{
	"idProducto":  {Kind: KindString, Required: true},
	"descripcion": {Kind: KindString, Required: true},
	"precio":      {Kind: KindNumber, Required: true},
}

// LoanSchema is the loan-calculation request schema.
var LoanSchema = Schema{
	"idProducto": {Kind: KindString, Required: true},
	"gramaje":    {Kind: KindNumber, Required: true},
}
