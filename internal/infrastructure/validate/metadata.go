// Package validate checks upload metadata against the embedded JSON schema:
// required title, the seven fixed departments and document types, and the
// language enumeration.
package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

//go:embed metadata_schema.json
var metadataSchemaJSON []byte

type MetadataValidator struct {
	schema *jsonschema.Schema
}

func NewMetadataValidator() (*MetadataValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metadata_schema.json", bytes.NewReader(metadataSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add metadata schema: %w", err)
	}
	schema, err := compiler.Compile("metadata_schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile metadata schema: %w", err)
	}
	return &MetadataValidator{schema: schema}, nil
}

func (v *MetadataValidator) ValidateMetadata(meta domain.SubmissionMetadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("unmarshal metadata: %w", err)
	}
	if err := v.schema.Validate(value); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "validate metadata", err)
	}
	return nil
}
