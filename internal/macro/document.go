package macro

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a macro document: a top-level YAML sequence of steps.
// Every step is validated so a broken document fails before replay, not
// in the middle of it.
func Parse(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, &DocumentError{Op: "parse", Err: err}
	}
	for i := range steps {
		if err := steps[i].Validate(); err != nil {
			return nil, &DocumentError{Op: "validate", Err: fmt.Errorf("step %d: %w", i, err)}
		}
	}
	return steps, nil
}

// Marshal renders steps back to the document form Parse accepts. Field
// order is fixed by the Step struct, so encode(decode(doc)) is stable.
func Marshal(steps []Step) ([]byte, error) {
	data, err := yaml.Marshal(steps)
	if err != nil {
		return nil, &DocumentError{Op: "marshal", Err: err}
	}
	return data, nil
}

// Load reads and parses a macro document from disk.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Op: "read", Err: err}
	}
	return Parse(data)
}

// Save writes steps to disk in document form.
func Save(path string, steps []Step) error {
	data, err := Marshal(steps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &DocumentError{Op: "write", Err: err}
	}
	return nil
}
