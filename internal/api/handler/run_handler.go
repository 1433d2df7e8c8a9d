package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ad-report-pipeline/internal/mapping"
	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/internal/pipeline"
	"ad-report-pipeline/internal/store"

	"github.com/google/uuid"
)

// Handler carries the process-scoped collaborators of the run endpoints: the
// reference mappings loaded at startup and the directory summaries are
// written under.
type Handler struct {
	Maps      *mapping.Mappings
	OutputDir string
}

// maxUploadBytes bounds the in-memory portion of a multipart parse.
const maxUploadBytes = 64 << 20

// CreateRun uploads report files and processes them synchronously
// @Summary Process uploaded report files
// @Description Upload SP, SD and SB report files plus an optional selected date, run the merge/aggregate pipeline and get the summary downloads
// @Tags runs
// @Accept multipart/form-data
// @Produce json
// @Param sp formData file true "SP report file(s), .xlsx or .csv"
// @Param sd formData file true "SD report file(s), .xlsx or .csv"
// @Param sb formData file true "SB report file(s), .xlsx or .csv"
// @Param date formData string false "Selected date (YYYY-MM-DD, default today)"
// @Success 200 {object} map[string]interface{} "Run completed"
// @Failure 400 {object} map[string]interface{} "Missing input group or bad date"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	date, err := parseSelectedDate(r.FormValue("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sp, err := readUploads(r, "sp")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sd, err := readUploads(r, "sd")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sb, err := readUploads(r, "sb")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// All three groups are required before the pipeline is invoked at all.
	var missing []model.Notice
	for _, group := range []struct {
		rt    model.ReportType
		files []model.UploadedFile
	}{{model.ReportSP, sp}, {model.ReportSD, sd}, {model.ReportSB, sb}} {
		if len(group.files) == 0 {
			missing = append(missing, model.WarnNotice(model.NoticeMissingInputGroup, "",
				fmt.Sprintf("please upload all required files (SP, SD, SB): %s group is empty", group.rt)))
		}
	}
	if len(missing) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "please upload all required files (SP, SD, SB)",
			"notices": missing,
		})
		return
	}

	runID := uuid.New().String()
	dateStr := date.Format("2006-01-02")
	if err := store.SaveRun(runID, dateStr); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save run")
		return
	}
	if err := store.UpdateRunStatus(runID, model.StatusProcessing); err != nil {
		fmt.Printf("❌ Failed to update status for run %s: %v\n", runID, err)
	}

	// One-shot synchronous pipeline: the response carries the finished run.
	result := pipeline.ProcessFiles(sp, sd, sb, h.Maps, date)

	files, err := h.writeSummaries(runID, result)
	if err != nil {
		if uerr := store.UpdateRunStatus(runID, model.StatusFailed); uerr != nil {
			fmt.Printf("❌ Failed to update status for run %s: %v\n", runID, uerr)
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, n := range result.Notices {
		if err := store.SaveNotice(runID, n); err != nil {
			fmt.Printf("❌ Failed to save notice for run %s: %v\n", runID, err)
		}
	}

	status := model.StatusCompleted
	if len(result.Notices) > 0 {
		status = model.StatusCompletedWithNotices
	}
	if err := store.UpdateRunStatus(runID, status); err != nil {
		fmt.Printf("❌ Failed to update status for run %s: %v\n", runID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "processing completed and files have been merged",
		"run_id":        runID,
		"status":        status,
		"selected_date": dateStr,
		"notices":       result.Notices,
		"files":         files,
	})
}

// writeSummaries serializes the three summary tables under the run's output
// directory and records them in the store.
func (h *Handler) writeSummaries(runID string, result model.ProcessResult) ([]model.OutputFile, error) {
	runDir := filepath.Join(h.OutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run output directory: %w", err)
	}

	var files []model.OutputFile
	for _, rt := range []model.ReportType{model.ReportSP, model.ReportSD, model.ReportSB} {
		summary := result.Summary(rt)
		buf, err := pipeline.TableToCSV(summary)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s summary: %w", rt, err)
		}

		path := filepath.Join(runDir, rt.SummaryFileName())
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s summary: %w", rt, err)
		}

		file := model.OutputFile{
			RunID:       runID,
			ReportType:  string(rt),
			FileName:    rt.SummaryFileName(),
			FilePath:    path,
			FileSize:    int64(buf.Len()),
			RecordCount: len(summary.Rows),
			DownloadURL: store.DownloadURL(runID, rt.SummaryFileName()),
		}
		if err := store.SaveOutputFile(file); err != nil {
			return nil, fmt.Errorf("failed to record %s summary: %w", rt, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// ListRuns retrieves all processing runs
// @Summary List runs
// @Description Get all processing runs with their status, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} model.Run "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch runs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves a specific run
// @Summary Get run
// @Description Retrieve details of a specific processing run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.Run "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "")
	if !ok {
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunNotices retrieves the notices of a run
// @Summary Get run notices
// @Description Retrieve all warnings and errors raised while processing a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run notices"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/notices [get]
func (h *Handler) GetRunNotices(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/notices")
	if !ok {
		return
	}

	notices, err := store.GetNotices(runID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve notices")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":  runID,
		"notices": notices,
		"count":   len(notices),
	})
}

// GetRunFiles retrieves the output files of a run
// @Summary Get run files
// @Description Retrieve the summary files produced by a run with their download URLs
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run files"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/files [get]
func (h *Handler) GetRunFiles(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/files")
	if !ok {
		return
	}

	files, err := store.GetOutputFiles(runID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve files")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"files":  files,
		"count":  len(files),
	})
}

// DownloadFile serves a summary file for download
// @Summary Download summary file
// @Description Download one of the summary CSV files produced by a run
// @Tags files
// @Produce text/csv
// @Param runID path string true "Run ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 400 {object} map[string]interface{} "Invalid URL format"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{runID}/{filename} [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/{runID}/{filename}
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) < 5 {
		respondError(w, http.StatusBadRequest, "invalid download URL")
		return
	}
	runID := pathParts[3]
	fileName := filepath.Base(pathParts[4])

	filePath := filepath.Join(h.OutputDir, runID, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, filePath)
}

// readUploads collects every uploaded file under the given form field.
func readUploads(r *http.Request, field string) ([]model.UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var files []model.UploadedFile
	for _, header := range r.MultipartForm.File[field] {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
		}
		files = append(files, model.UploadedFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

// parseSelectedDate parses the optional date field, defaulting to today and
// enforcing the allowed range.
func parseSelectedDate(v string) (time.Time, error) {
	if v == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	date, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	if err := pipeline.ValidateSelectedDate(date); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// runIDFromPath extracts the run id from /api/v1/runs/{id}{suffix} paths.
func runIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	prefix := "/api/v1/runs/"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		respondError(w, http.StatusBadRequest, "invalid path")
		return "", false
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" {
		respondError(w, http.StatusBadRequest, "run ID is required")
		return "", false
	}
	return runID, true
}

// respondError sends a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": message,
	})
}
