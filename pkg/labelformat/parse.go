package labelformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a template from a byte slice
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	// Legacy templates omit the unit and stored dimensions in millimeters
	if t.Config.Unit == "" {
		t.Config.Unit = UnitMillimeter
	}

	if err := Validate(&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// ParseFile parses a template file from disk
func ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Template to JSON bytes
func (t *Template) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// SaveToFile saves a Template to a file
func (t *Template) SaveToFile(path string) error {
	data, err := t.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
