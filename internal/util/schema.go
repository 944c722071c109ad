package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	js "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchemaValidation is returned (wrapped) when a document does not validate against the schema.
var ErrSchemaValidation = errors.New("schema validation failed")

// SchemaValidator validates JSON documents against a compiled JSON schema.
type SchemaValidator struct {
	schema *js.Schema
}

// Validate validates the decoded JSON value. The returned error wraps ErrSchemaValidation when the value is invalid.
func (v *SchemaValidator) Validate(value any) error {
	if err := v.schema.Validate(value); err != nil {
		var verr *js.ValidationError
		if errors.As(err, &verr) {
			return errors.Wrap(ErrSchemaValidation, flattenValidationError(verr))
		}
		return err
	}
	return nil
}

// ValidateJSON decodes buf and validates it.
func (v *SchemaValidator) ValidateJSON(buf []byte) error {
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var o any
	if err := dec.Decode(&o); err != nil {
		return fmt.Errorf("error decoding json: %w", err)
	}
	return v.Validate(o)
}

func flattenValidationError(verr *js.ValidationError) string {
	var msgs []string
	var walk func(e *js.ValidationError)
	walk = func(e *js.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(msgs, "; ")
}

// NewSchemaValidator compiles the JSON schema in buf, registered under name so that it can reference itself.
func NewSchemaValidator(name string, buf []byte) (*SchemaValidator, error) {
	compiler := js.NewCompiler()
	url := "file:///" + name
	if err := compiler.AddResource(url, bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("error adding schema: %s. %w", name, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("error compiling schema: %s. %w", name, err)
	}
	return &SchemaValidator{schema: schema}, nil
}
