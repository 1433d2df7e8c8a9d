package store

import (
	"database/sql"
	"fmt"
	"time"

	"ad-report-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the run-tracking database and creates the schema. The store
// records runs, their notices and their output files; it never stores report
// data itself.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		selected_date TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	noticeTable := `
	CREATE TABLE IF NOT EXISTS run_notices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		level TEXT,
		code TEXT,
		message TEXT,
		file_name TEXT,
		created_at DATETIME
	);
	`
	fileTable := `
	CREATE TABLE IF NOT EXISTS output_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		report_type TEXT,
		file_name TEXT,
		file_path TEXT,
		file_size INTEGER,
		record_count INTEGER,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, noticeTable, fileTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new processing run.
func SaveRun(runID, selectedDate string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, selected_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, selectedDate, model.StatusPending, now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// ListRuns returns all runs, newest first.
func ListRuns() ([]model.Run, error) {
	rows, err := db.Query(`SELECT id, selected_date, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.SelectedDate, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by id.
func GetRun(runID string) (model.Run, error) {
	var r model.Run
	err := db.QueryRow(`SELECT id, selected_date, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.SelectedDate, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.Run{}, err
	}
	return r, nil
}

// SaveNotice records one notice for a run.
func SaveNotice(runID string, n model.Notice) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_notices (run_id, level, code, message, file_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, string(n.Level), string(n.Code), n.Message, n.File, now)
	return err
}

// GetNotices returns all notices recorded for a run.
func GetNotices(runID string) ([]model.Notice, error) {
	rows, err := db.Query(`SELECT level, code, message, file_name FROM run_notices WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		var level, code string
		if err := rows.Scan(&level, &code, &n.Message, &n.File); err != nil {
			return nil, err
		}
		n.Level = model.NoticeLevel(level)
		n.Code = model.NoticeCode(code)
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// SaveOutputFile records one produced summary file.
func SaveOutputFile(f model.OutputFile) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO output_files (run_id, report_type, file_name, file_path, file_size, record_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.RunID, f.ReportType, f.FileName, f.FilePath, f.FileSize, f.RecordCount, now)
	return err
}

// GetOutputFiles returns the output file records of a run.
func GetOutputFiles(runID string) ([]model.OutputFile, error) {
	rows, err := db.Query(`SELECT id, run_id, report_type, file_name, file_path, file_size, record_count FROM output_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.OutputFile
	for rows.Next() {
		var f model.OutputFile
		if err := rows.Scan(&f.ID, &f.RunID, &f.ReportType, &f.FileName, &f.FilePath, &f.FileSize, &f.RecordCount); err != nil {
			return nil, err
		}
		f.DownloadURL = DownloadURL(f.RunID, f.FileName)
		files = append(files, f)
	}
	return files, rows.Err()
}

// DownloadURL generates the download endpoint path for a produced file.
func DownloadURL(runID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", runID, fileName)
}
