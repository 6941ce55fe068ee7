// Package ocr decodes and validates OCR block payloads at the boundary.
// The image-to-text step itself happens upstream; this core only consumes
// the resulting block stream.
package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// blockSchema constrains the incoming block stream before any parsing
// trusts it. Schema violations are boundary errors; they never degrade
// into a low-confidence parse.
var blockSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"text", "bbox", "line_index"},
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
			"bbox": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"x", "y", "w", "h"},
				"properties": map[string]any{
					"x": map[string]any{"type": "number"},
					"y": map[string]any{"type": "number"},
					"w": map[string]any{"type": "number", "minimum": 0},
					"h": map[string]any{"type": "number", "minimum": 0},
				},
			},
			"line_index": map[string]any{"type": "integer", "minimum": 0},
			"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		},
	},
}

var compiledBlockSchema = mustCompile(blockSchema)

func mustCompile(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal block schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("blocks.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add block schema: %v", err))
	}
	schema, err := compiler.Compile("blocks.json")
	if err != nil {
		panic(fmt.Sprintf("compile block schema: %v", err))
	}
	return schema
}

// DecodeBlocks validates data against the block schema and decodes it.
func DecodeBlocks(data []byte) ([]entity.OcrBlock, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal blocks: %w", err)
	}
	if err := compiledBlockSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("blocks do not match schema: %w", err)
	}
	var blocks []entity.OcrBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	return blocks, nil
}
