// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"matching-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Validate checks that task types are unique, timeouts parse and every
// input schema compiles.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %q: invalid timeout: %w", a.ID, err)
			}
		}
		if len(a.InputSchema) > 0 {
			raw, err := json.Marshal(a.InputSchema)
			if err != nil {
				return fmt.Errorf("activity %q: %w", a.ID, err)
			}
			if _, err := validation.NewSchema(string(raw)); err != nil {
				return fmt.Errorf("activity %q: invalid input schema: %w", a.ID, err)
			}
		}
	}
	return nil
}
