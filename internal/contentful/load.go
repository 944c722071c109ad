package contentful

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
)

//go:embed export.schema.json
var exportSchema []byte

var (
	validatorOnce sync.Once
	validator     *util.SchemaValidator
	validatorErr  error
)

// ValidateExport checks the shape of a raw export against the export JSON schema. The error wraps util.ErrSchemaValidation when the export is invalid.
func ValidateExport(buf []byte) error {
	validatorOnce.Do(func() {
		validator, validatorErr = util.NewSchemaValidator("export.schema.json", exportSchema)
	})
	if validatorErr != nil {
		return validatorErr
	}
	return validator.ValidateJSON(buf)
}

// ParseExport decodes a raw export.
func ParseExport(buf []byte) (*Export, error) {
	var export Export
	dec := json.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&export); err != nil {
		return nil, errors.Wrap(err, "error decoding contentful export")
	}
	return &export, nil
}

// LoadExport reads the export file written by contentful-export. Files ending in .gz are decompressed.
// When validate is true the raw export is checked against the export JSON schema first.
func LoadExport(filename string, validate bool) (*Export, error) {
	if !util.Exists(filename) {
		return nil, errors.Newf("export file does not exist: %s", filename)
	}
	buf, err := util.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := ValidateExport(buf); err != nil {
			return nil, errors.Wrapf(err, "invalid export file %s", filename)
		}
	}
	return ParseExport(buf)
}
