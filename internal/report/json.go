package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// ToJSON serializes the report to indented JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToJSONCompact serializes the report to compact JSON.
func (r *Report) ToJSONCompact() ([]byte, error) {
	return json.Marshal(r)
}

// WriteToFile writes the report to a file as indented JSON.
func (r *Report) WriteToFile(path string) error {
	data, err := r.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

// WriteToFileCompact writes the report to a file in compact format.
func (r *Report) WriteToFileCompact(path string) error {
	data, err := r.ToJSONCompact()
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
