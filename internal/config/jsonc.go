package config

import (
	json "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
)

// JSONC returns a koanf parser for JSON config files that may carry comments
// and trailing commas.
func JSONC() *JSONCParser { return &JSONCParser{} }

type JSONCParser struct{}

func (p *JSONCParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *JSONCParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return json.Marshal(o)
}
