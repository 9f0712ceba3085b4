package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFitout(t *testing.T) *Project {
	t.Helper()
	schema, err := LoadProjectSchema(filepath.Join("testdata", "fitout.xml"))
	require.NoError(t, err)
	require.Empty(t, ValidateProjectSchema(schema))
	project, err := Convert(schema)
	require.NoError(t, err)
	return project
}

func byName(p *Project) map[string]domain.TaskRecord {
	m := make(map[string]domain.TaskRecord)
	for _, t := range p.Tasks {
		m[t.Name] = t
	}
	return m
}

func TestConvert_SkipsProjectSummaryAndNullRows(t *testing.T) {
	p := loadFitout(t)
	assert.Equal(t, "Office Fit-out", p.Name)

	var uids []int
	for _, task := range p.Tasks {
		uids = append(uids, task.UniqueID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, uids, "document order, no UID 0 or null rows")
}

func TestConvert_TaskFields(t *testing.T) {
	tasks := byName(loadFitout(t))

	draft := tasks["Draft brief"]
	assert.Equal(t, 3, draft.OutlineLevel)
	assert.False(t, draft.IsSummary)
	assert.True(t, draft.Critical)
	assert.Equal(t, 500, draft.Priority)
	assert.Equal(t, "1.1.1", draft.WBS)
	assert.Equal(t, 50, draft.PercentComplete)
	assert.Equal(t, time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC), draft.Finish)
	assert.Equal(t, time.Date(2024, 1, 9, 17, 0, 0, 0, time.UTC), draft.BaselineFinish)
	assert.Equal(t, "7 days", draft.Duration)
	assert.Equal(t, "Agree layout with facilities", draft.Notes)
	assert.Equal(t, []string{"Alice"}, draft.Resources)

	assert.True(t, tasks["Kickoff"].Milestone)
	assert.True(t, tasks["Phase A"].IsSummary)
}

func TestConvert_PredecessorsDropSelfLinks(t *testing.T) {
	tasks := byName(loadFitout(t))
	assert.Equal(t, []string{"4-Review brief"}, tasks["Implement"].Predecessors)
	assert.Equal(t, []string{"3-Draft brief"}, tasks["Review brief"].Predecessors)
}

func TestConvert_ResourcesSkipUnassigned(t *testing.T) {
	tasks := byName(loadFitout(t))
	assert.Equal(t, []string{"Alice", "Bob"}, tasks["Implement"].Resources)
	assert.Empty(t, tasks["Review brief"].Resources)
}

func TestConvert_JSONExport(t *testing.T) {
	schema, err := LoadProjectSchema(filepath.Join("testdata", "fitout.json"))
	require.NoError(t, err)
	require.Empty(t, ValidateProjectSchema(schema))

	p, err := Convert(schema)
	require.NoError(t, err)
	tasks := byName(p)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), tasks["Implement"].Finish)
	assert.Equal(t, []string{"3-Draft brief"}, tasks["Implement"].Predecessors)
	assert.Equal(t, []string{"Alice"}, tasks["Implement"].Resources)
}

func TestFormatDuration(t *testing.T) {
	cases := map[string]string{
		"PT8H0M0S":  "1 day",
		"PT16H0M0S": "2 days",
		"PT0H0M0S":  "0 days",
		"PT4H30M0S": "4.5 hrs",
		"PT12H0M0S": "1.50 days",
		"P3D":       "P3D",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDuration(in), in)
	}
}
