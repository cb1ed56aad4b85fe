package ingestion

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// BoxDocumentSchema is the JSON Schema every ingested box document must
// satisfy before LoadBoxContainer is trusted to run against it.
const BoxDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["root"],
  "properties": {
    "root": {"$ref": "#/definitions/box"},
    "boxes": {"type": "array", "items": {"$ref": "#/definitions/box"}}
  },
  "definitions": {
    "box": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "integer"},
        "parent_id": {"type": "integer"},
        "data_id": {"type": "string"},
        "size": {
          "type": "object",
          "properties": {
            "width": {"type": "number", "minimum": 0},
            "height": {"type": "number", "minimum": 0}
          }
        },
        "is_special": {"type": "boolean"},
        "is_collapsed": {"type": "boolean"},
        "is_assistant": {"type": "boolean"},
        "affects_layout": {"type": "boolean"},
        "strategy_id": {"type": "string"},
        "assistant_strategy_id": {"type": "string"},
        "attributes": {"type": "object"}
      }
    }
  }
}`

// ValidateBoxDocument validates raw JSON box data against
// BoxDocumentSchema, returning every violation found rather than just the
// first, so a caller can report a complete error list back to whoever
// authored the ingested file.
func ValidateBoxDocument(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(BoxDocumentSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("ingestion: schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}
	return fmt.Errorf("ingestion: box document failed schema validation: %s", strings.Join(messages, "; "))
}
