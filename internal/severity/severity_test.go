package severity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"info level", SeverityInfo, "info"},
		{"warning level", SeverityWarning, "warning"},
		{"critical level", SeverityCritical, "critical"},

		// Edge cases: Invalid severity values
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.Equal(t, []Severity{SeverityCritical, SeverityWarning, SeverityInfo}, All)
}

func TestParse(t *testing.T) {
	for _, s := range All {
		parsed, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := Parse("error")
	assert.Error(t, err)
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"s": SeverityWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"warning"}`, string(data))

	var decoded map[string]Severity
	require.NoError(t, json.Unmarshal([]byte(`{"s":"critical"}`), &decoded))
	assert.Equal(t, SeverityCritical, decoded["s"])

	assert.Error(t, json.Unmarshal([]byte(`{"s":"fatal"}`), &decoded))
}
