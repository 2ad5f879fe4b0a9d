package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescope/estimator-cli/internal/model"
)

func TestLoadAnalysis(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	raw := `{
		"project_status": "under_construction",
		"stage_of_construction": "Structure",
		"progress_percent": 45,
		"location": "Andheri East, Mumbai",
		"category_matrix": {"typology": "apartment tower"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	analysis, err := loadAnalysis(path)
	require.NoError(t, err)
	assert.Equal(t, "under_construction", analysis.ProjectStatus)
	assert.Equal(t, "Structure", analysis.StageOfConstruction)
	assert.InDelta(t, 45, analysis.ProgressPercent, 0.001)
	require.NotNil(t, analysis.CategoryMatrix)
	assert.Equal(t, "apartment tower", analysis.CategoryMatrix.Typology)
}

func TestLoadAnalysis_MissingFile(t *testing.T) {
	_, err := loadAnalysis("/nonexistent/site.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read analysis")
}

func TestLoadAnalysis_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := loadAnalysis(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse analysis")
}

func TestBuildAssessment(t *testing.T) {
	analysis := model.SiteAnalysis{Location: "Pune"}
	result := map[string]int{"n": 1}

	a, err := buildAssessment(model.KindPlan, analysis, result)
	require.NoError(t, err)
	assert.Equal(t, model.KindPlan, a.Kind)
	assert.Equal(t, "Pune", a.Location)
	assert.JSONEq(t, `{"n":1}`, string(a.Result))
	assert.Contains(t, string(a.Input), `"Pune"`)
	// Store fills ID and CreatedAt on save.
	assert.Empty(t, a.ID)
}

func TestListAnalysisFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	files, err := listAnalysisFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.json"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.json"), files[1])
}

func TestListAnalysisFiles_MissingDir(t *testing.T) {
	_, err := listAnalysisFiles("/nonexistent/dir")
	require.Error(t, err)
}
