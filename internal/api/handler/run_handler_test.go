package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ad-report-pipeline/internal/mapping"
	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "runs.db")))

	asin := model.NewTable(model.ColumnASIN, model.ColumnSubCategory)
	asin.Rows = []model.Row{{model.ColumnASIN: "B0001", model.ColumnSubCategory: "Shoes"}}
	campaign := model.NewTable(model.ColumnSBCampaignName, model.ColumnSubCategory)
	campaign.Rows = []model.Row{{model.ColumnSBCampaignName: "brand-shoes", model.ColumnSubCategory: "Shoes"}}

	return &Handler{
		Maps:      &mapping.Mappings{ASIN: asin, Campaign: campaign},
		OutputDir: t.TempDir(),
	}
}

type upload struct {
	field, name, content string
}

func multipartBody(t *testing.T, date string, uploads []upload) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if date != "" {
		require.NoError(t, writer.WriteField("date", date))
	}
	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, u.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func allGroups() []upload {
	return []upload{
		{"sp", "sp.csv", "Advertised ASIN,14 Day Total Sales (₹),14 Day Total Orders (#),14 Day Total Units (#),Spend\nB0001,100,2,3,10\n"},
		{"sd", "sd.csv", "Advertised ASIN,7 Day Total Sales (₹),7 Day Total Orders (#),7 Day Total Units (#),Spend\nB0001,40,1,2,8\n"},
		{"sb", "sb.csv", "Campaigns,Orders,Clicks,Sales(INR),Spend(INR)\nbrand-shoes,3,30,300,90\n"},
	}
}

func TestCreateRunProcessesAllGroups(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "2024-06-01", allGroups())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreateRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RunID   string             `json:"run_id"`
		Status  string             `json:"status"`
		Notices []model.Notice     `json:"notices"`
		Files   []model.OutputFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, model.StatusCompleted, resp.Status)
	assert.Empty(t, resp.Notices)
	require.Len(t, resp.Files, 3)

	// The three fixed-name summaries exist on disk, non-empty.
	for _, rt := range []model.ReportType{model.ReportSP, model.ReportSD, model.ReportSB} {
		path := filepath.Join(h.OutputDir, resp.RunID, rt.SummaryFileName())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	// And the run is queryable from the store.
	run, err := store.GetRun(resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, run.Status)
	assert.Equal(t, "2024-06-01", run.SelectedDate)
}

func TestCreateRunMissingGroupRejected(t *testing.T) {
	h := newTestHandler(t)
	uploads := allGroups()[:2] // no SB files
	body, contentType := multipartBody(t, "2024-06-01", uploads)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreateRun(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "please upload all required files")

	// The pipeline was never invoked: no runs exist.
	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCreateRunRejectsOutOfRangeDate(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "1999-12-31", allGroups())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreateRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "outside allowed range")
}

func TestDownloadFileServesCSV(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "2024-06-01", allGroups())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.CreateRun(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	dlReq := httptest.NewRequest(http.MethodGet, "/api/v1/download/"+resp.RunID+"/SP_Summary.csv", nil)
	dlRec := httptest.NewRecorder()
	h.DownloadFile(dlRec, dlReq)

	require.Equal(t, http.StatusOK, dlRec.Code)
	assert.Equal(t, "text/csv", dlRec.Header().Get("Content-Type"))
	assert.Contains(t, dlRec.Header().Get("Content-Disposition"), "SP_Summary.csv")
	assert.Contains(t, dlRec.Body.String(), "Selected Date,Sub-Category")
}

func TestDownloadFileNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/download/nope/SP_Summary.csv", nil)
	rec := httptest.NewRecorder()
	h.DownloadFile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
