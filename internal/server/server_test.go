package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescope/estimator-cli/internal/model"
	"github.com/sitescope/estimator-cli/internal/store"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	return New(Options{
		Port:   0,
		Valuer: valuation.New(valuation.DefaultTuning()),
		Store:  st,
	})
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func sampleAnalysis() model.SiteAnalysis {
	return model.SiteAnalysis{
		ProjectStatus:       "under_construction",
		StageOfConstruction: "Structure",
		ProgressPercent:     45,
		Location:            "Andheri East, Mumbai",
		ProjectType:         "Residential",
		Scale:               "Mid-rise",
		CategoryMatrix:      &model.CategoryMatrix{Typology: "apartment tower"},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestPlanEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.Handler(), "/v1/plan", sampleAnalysis())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID     string `json:"id"`
		Result struct {
			Labor     []json.RawMessage `json:"labor"`
			Machinery []json.RawMessage `json:"machinery"`
			Materials []json.RawMessage `json:"materials"`
			Paints    []json.RawMessage `json:"paints"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// No store configured, so no ID is assigned.
	assert.Empty(t, resp.ID)
	assert.Len(t, resp.Result.Labor, 8)
	assert.Len(t, resp.Result.Machinery, 7)
	assert.Len(t, resp.Result.Materials, 12)
	assert.Len(t, resp.Result.Paints, 4)
}

func TestPlanEndpoint_InvalidBody(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestValuationEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s.Handler(), "/v1/valuation", sampleAnalysis())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result valuation.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Greater(t, resp.Result.Property.Base, 0.0)
	assert.LessOrEqual(t, resp.Result.Property.Low, resp.Result.Property.Base)
	assert.GreaterOrEqual(t, resp.Result.Property.High, resp.Result.Property.Base)
	assert.GreaterOrEqual(t, resp.Result.Confidence, 18.0)
	assert.LessOrEqual(t, resp.Result.Confidence, 92.0)
}

func TestValuationEndpoint_Persists(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(t, st)

	rec := postJSON(t, s.Handler(), "/v1/valuation", sampleAnalysis())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	saved, err := st.GetAssessment(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KindValuation, saved.Kind)
	assert.Equal(t, "Andheri East, Mumbai", saved.Location)
}

func TestListAssessments(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(t, st)

	postJSON(t, s.Handler(), "/v1/plan", sampleAnalysis())
	postJSON(t, s.Handler(), "/v1/valuation", sampleAnalysis())

	req := httptest.NewRequest(http.MethodGet, "/v1/assessments?kind=plan", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, model.KindPlan, got[0].Kind)
}

func TestListAssessments_Limit(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(t, st)

	for i := 0; i < 3; i++ {
		postJSON(t, s.Handler(), "/v1/plan", sampleAnalysis())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/assessments?limit=2", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListAssessments_InvalidLimit(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(t, st)

	for _, v := range []string{"abc", "-1", "2x"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/assessments?limit="+v, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, v)
	}
}

func TestListAssessments_NoStore(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/assessments", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGetAssessment_NotFound(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/v1/assessments/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
