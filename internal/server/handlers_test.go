package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/analysis"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/extraction"
	"github.com/jonathan/resume-match/internal/types"
)

type fakeService struct {
	result *types.AnalysisResult
	err    error
}

func (f *fakeService) Run(_ context.Context, _ analysis.Request) (*types.AnalysisResult, error) {
	return f.result, f.err
}

type fakeStore struct {
	saved   []*types.AnalysisResult
	byID    map[uuid.UUID]*types.AnalysisResult
	listErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[uuid.UUID]*types.AnalysisResult)}
}

func (f *fakeStore) SaveAnalysis(_ context.Context, result *types.AnalysisResult) error {
	f.saved = append(f.saved, result)
	f.byID[result.ID] = result
	return nil
}

func (f *fakeStore) GetAnalysis(_ context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	result, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return result, nil
}

func (f *fakeStore) ListAnalyses(_ context.Context, _ db.ListAnalysesOptions) ([]types.AnalysisResult, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	results := make([]types.AnalysisResult, 0, len(f.saved))
	for _, r := range f.saved {
		results = append(results, *r)
	}
	return results, len(results), nil
}

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		ID:            uuid.New(),
		CandidateName: "Jordan",
		JobTitle:      "Backend Engineer",
		Company:       "Acme",
		ScoreBreakdown: types.ScoreBreakdown{
			BaseScore:  100,
			RawScore:   90,
			FinalScore: 90,
			DimensionDeltas: map[string]int{
				types.DimensionSkills: -10,
			},
		},
		Explanation: "Overall match: 90/100 (excellent fit).",
		CreatedAt:   time.Now().UTC(),
	}
}

func newTestServer(service AnalysisService, store AnalysisStore, secret string) *httptest.Server {
	s := New(Config{Port: 0, JWTSecret: secret}, service, store, nil)
	return httptest.NewServer(s.httpServer.Handler)
}

func postAnalysis(t *testing.T, ts *httptest.Server, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"resume_text": "resume",
		"job_text":    "job",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/analyses", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAnalysis(t *testing.T) {
	result := sampleResult()
	store := newFakeStore()
	ts := newTestServer(&fakeService{result: result}, store, "")
	defer ts.Close()

	resp := postAnalysis(t, ts, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload analysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, result.ID, payload.ID)
	assert.Equal(t, 90, payload.MatchScore)
	assert.NotEmpty(t, payload.Explanation)

	require.Len(t, store.saved, 1)
	assert.Equal(t, result.ID, store.saved[0].ID)
}

func TestCreateAnalysisInvalidBody(t *testing.T) {
	ts := newTestServer(&fakeService{result: sampleResult()}, newFakeStore(), "")
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/analyses", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAnalysisErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			"invalid input",
			&extraction.InvalidInputError{Field: "resume_text", Message: "text is empty"},
			http.StatusBadRequest,
		},
		{
			"extraction exhausted",
			&extraction.ExtractionFailedError{Document: "resume", Attempts: 3,
				Cause: &extraction.SchemaValidationError{Provider: "p", Reason: "bad shape"}},
			http.StatusBadGateway,
		},
		{
			"timeout",
			&extraction.ExtractionFailedError{Document: "job", Attempts: 1,
				Cause: &extraction.TimeoutError{Provider: "p"}},
			http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(&fakeService{err: tt.err}, newFakeStore(), "")
			defer ts.Close()

			resp := postAnalysis(t, ts, "")
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestCreateAnalysisRequiresAuth(t *testing.T) {
	ts := newTestServer(&fakeService{result: sampleResult()}, newFakeStore(), "test-secret")
	defer ts.Close()

	resp := postAnalysis(t, ts, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := NewJWTService("test-secret", 1).GenerateToken("tester")
	require.NoError(t, err)

	authed := postAnalysis(t, ts, token)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusCreated, authed.StatusCode)
}

func TestCreateAnalysisRejectsWrongSecret(t *testing.T) {
	ts := newTestServer(&fakeService{result: sampleResult()}, newFakeStore(), "right-secret")
	defer ts.Close()

	token, err := NewJWTService("wrong-secret", 1).GenerateToken("tester")
	require.NoError(t, err)

	resp := postAnalysis(t, ts, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetAnalysis(t *testing.T) {
	result := sampleResult()
	store := newFakeStore()
	require.NoError(t, store.SaveAnalysis(context.Background(), result))

	ts := newTestServer(&fakeService{result: result}, store, "")
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/analyses/" + result.ID.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get(ts.URL + "/analyses/" + uuid.NewString())
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	malformed, err := http.Get(ts.URL + "/analyses/not-a-uuid")
	require.NoError(t, err)
	defer malformed.Body.Close()
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
}

func TestListAnalyses(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveAnalysis(context.Background(), sampleResult()))
	require.NoError(t, store.SaveAnalysis(context.Background(), sampleResult()))

	ts := newTestServer(&fakeService{}, store, "")
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/analyses?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Analyses []analysisResponse `json:"analyses"`
		Total    int                `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 2, payload.Total)
	assert.Len(t, payload.Analyses, 2)
}

func TestEndpointsWithoutStore(t *testing.T) {
	ts := newTestServer(&fakeService{result: sampleResult()}, nil, "")
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/analyses")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	created := postAnalysis(t, ts, "")
	defer created.Body.Close()
	assert.Equal(t, http.StatusCreated, created.StatusCode, "analysis works without persistence")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&fakeService{}, nil, "")
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
