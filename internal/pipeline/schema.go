package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"reciboscan/constants"
)

// DatetimeLayout is the local, timezone-free wire format for timestamps.
// Timezone math is the caller's responsibility.
const DatetimeLayout = "2006-01-02T15:04:05"

// outputDoc is the wire shape of a scan result. Absent fields are omitted
// rather than nulled; raw_text is always present.
type outputDoc struct {
	Datetime      string `json:"datetime,omitempty"`
	Amount        string `json:"amount,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Currency      string `json:"currency,omitempty"`
	RecipeName    string `json:"recipe_name,omitempty"`
	RawText       string `json:"raw_text"`
}

// MarshalOutput encodes an Output into its canonical JSON document.
func MarshalOutput(o Output) ([]byte, error) {
	doc := outputDoc{
		TransactionID: o.TransactionID,
		Currency:      o.Currency,
		RecipeName:    string(o.RecipeName),
		RawText:       o.RawText,
	}
	if o.Datetime != nil {
		doc.Datetime = o.Datetime.Format(DatetimeLayout)
	}
	if o.Amount != nil {
		doc.Amount = o.Amount.String()
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return b, nil
}

// BuildOutputJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map, used to validate scan documents before they are persisted or
// exported.
func BuildOutputJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"datetime":       map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`},
			"amount":         map[string]any{"type": "string", "pattern": `^-?\d+(\.\d+)?$`},
			"transaction_id": map[string]any{"type": "string", "pattern": `^\d+$`},
			"currency":       map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"recipe_name":    map[string]any{"type": "string", "enum": constants.RecipeNames()},
			"raw_text":       map[string]any{"type": "string"},
		},
		"required": []string{"raw_text"},
	}
}

// ValidateOutputJSON validates data against the output schema.
func ValidateOutputJSON(data []byte) error {
	b, err := json.Marshal(BuildOutputJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
