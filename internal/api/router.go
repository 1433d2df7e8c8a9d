package api

import (
	"ad-report-pipeline/internal/api/handler"
	"ad-report-pipeline/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "ad-report-pipeline/docs" // swagger spec registration
)

// RegisterRoutes wires the run/download surface and the swagger UI.
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/runs", h.CreateRun)
	r.GET("/api/v1/runs", h.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/notices", h.GetRunNotices)
	r.GET("/api/v1/runs/*/files", h.GetRunFiles)
	r.GET("/api/v1/download/*/*", h.DownloadFile)
	// Generic run route last
	r.GET("/api/v1/runs/*", h.GetRun)

	r.Handle("/swagger/*", httpSwagger.WrapHandler)
}
