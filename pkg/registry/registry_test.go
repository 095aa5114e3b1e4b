package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ccs "matching-workers/internal/workers/matching/calculate-compatibility-score"
	ra "matching-workers/internal/workers/matching/rank-applicants"
	roc "matching-workers/internal/workers/matching/resolve-offer-category"
)

func TestShippedRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{ccs.TaskType, ra.TaskType, roc.TaskType} {
		_, ok := reg.Find(taskType)
		assert.True(t, ok, "task type %s is not registered", taskType)
	}
	assert.Len(t, reg.Activities, 3)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     ActivityRegistry
		wantErr string
	}{
		{
			name:    "duplicate task type",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a", TaskType: "x"}, {ID: "b", TaskType: "x"}}},
			wantErr: "duplicate taskType",
		},
		{
			name:    "bad timeout",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a", TaskType: "x", Timeout: "soon"}}},
			wantErr: "invalid timeout",
		},
		{
			name:    "bad schema",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a", TaskType: "x", InputSchema: map[string]interface{}{"type": 12}}}},
			wantErr: "invalid input schema",
		},
		{
			name:    "missing task type",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a"}}},
			wantErr: "no taskType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = LoadRegistry(path)
	assert.Error(t, err)
}
