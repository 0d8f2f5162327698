package registry

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// CatalogSchema returns the JSON Schema describing the catalogue file
// format, for host-side validation of user catalogues.
func CatalogSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Catalog{})
	schema.Title = "tokenlens model catalog"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog schema: %w", err)
	}
	return data, nil
}
