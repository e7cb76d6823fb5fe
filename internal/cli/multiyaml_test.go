package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultiYAMLFromBytes(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []map[string]any
		wantErr  bool
	}{
		{
			name: "documents with separators",
			content: `---
kind: Task
spec:
  title: one
---
kind: Steps
spec:
  step_count: 7400`,
			expected: []map[string]any{
				{"kind": "Task", "spec": map[string]any{"title": "one"}},
				{"kind": "Steps", "spec": map[string]any{"step_count": 7400}},
			},
		},
		{
			name:     "trailing separator",
			content:  "kind: Task\nspec:\n  title: one\n---\n",
			expected: []map[string]any{{"kind": "Task", "spec": map[string]any{"title": "one"}}},
		},
		{
			name:     "only separators",
			content:  "---\n---\n",
			expected: []map[string]any{},
		},
		{
			name:     "empty",
			content:  "  \n",
			expected: []map[string]any{},
		},
		{
			name:    "invalid yaml",
			content: "kind: Task\nspec: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := ParseMultiYAMLFromBytes([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if len(tt.expected) == 0 {
				assert.Empty(t, docs)
				return
			}
			assert.Equal(t, tt.expected, docs)
		})
	}
}

func TestLoadResourcesFromFile(t *testing.T) {
	now = fixedClock
	t.Cleanup(func() { now = timeNow })
	t.Setenv("TRACKME_TEST_TAG", "work")

	content := "kind: Steps\nspec:\n  date: \"{{ .YESTERDAY }}\"\n  step_count: 7400\n" +
		"---\nkind: Task\nspec:\n\ttitle: Review Q4 reports\n\ttag: {{ .ENV.TRACKME_TEST_TAG }}\n" +
		"---\nkind: Task\nspec:\n  title: Call mom\n"
	file := filepath.Join(t.TempDir(), "bulk.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	resources, err := LoadResourcesFromFile(file)
	require.NoError(t, err)
	require.Len(t, resources[KindTask], 2)
	require.Len(t, resources[KindSteps], 1)

	task := resources[KindTask][0]
	assert.Equal(t, 2, task.Index)
	assert.JSONEq(t, `{"title":"Review Q4 reports","tag":"work"}`, string(task.Spec))
	assert.Equal(t, "Review Q4 reports", task.label())
	assert.JSONEq(t, `{"date":"2025-03-11","step_count":7400}`, string(resources[KindSteps][0].Spec))
	assert.Equal(t, "2025-03-11", resources[KindSteps][0].label())
}

func TestGroupResourcesErrors(t *testing.T) {
	tests := []struct {
		name string
		docs []map[string]any
		err  string
	}{
		{"no documents", nil, "no documents found"},
		{"missing kind", []map[string]any{{"spec": map[string]any{}}}, "document 1: kind is missing or not a string"},
		{"unknown kind", []map[string]any{{"kind": "Workout", "spec": map[string]any{}}}, "document 1: invalid resource kind: Workout"},
		{"missing spec", []map[string]any{
			{"kind": "Task", "spec": map[string]any{"title": "a"}},
			{"kind": "Meal"},
		}, "document 2: spec is missing or not a mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := groupResources(tt.docs)
			assert.EqualError(t, err, tt.err)
		})
	}
}

func TestResourceLabelFallback(t *testing.T) {
	r := Resource{Kind: KindVital, Spec: []byte(`{"value":72}`), Index: 3}
	assert.Equal(t, "document 3", r.label())
}
