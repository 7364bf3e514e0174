// Package schema describes the exported catalog document as JSON Schema.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/saffronjam/nativedb/internal/common"
)

const (
	title       = "Native Catalog"
	description = "Normalized native database: namespaces of natives with hash, parameters and return type."
)

// Catalog reflects the schema of a JSON-encoded common.Catalog.
func Catalog() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(common.Catalog))
	schema.Title = title
	schema.Description = description
	return schema
}

// Marshal renders the catalog schema as indented JSON with a trailing
// newline.
func Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(Catalog(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
