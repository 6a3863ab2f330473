package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/app"
	"github.com/shrimpsizemoose/rodpenna/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	gradeHandler := handlers.NewGradeHandler(service)

	http.HandleFunc("POST /api/v1/register", gradeHandler.HandleRegister)
	http.HandleFunc("POST /api/v1/login", gradeHandler.HandleLogin)
	http.HandleFunc("POST /api/v1/logout", gradeHandler.HandleLogout)

	http.HandleFunc("POST /api/v1/gradings", gradeHandler.HandleCreateGrading)
	http.HandleFunc("GET /api/v1/gradings", gradeHandler.HandleListGradings)
	http.HandleFunc("GET /api/v1/gradings/{id}/report", gradeHandler.HandleReport)
	http.HandleFunc("GET /api/v1/errors", gradeHandler.HandleListErrorStats)
	http.HandleFunc("GET /api/v1/recommendations", gradeHandler.HandleRecommendations)

	http.HandleFunc("GET /api/v1/admin/invites", gradeHandler.HandleAdminListInvites)
	http.HandleFunc("POST /api/v1/admin/invites", gradeHandler.HandleAdminGenerateInvite)
	http.HandleFunc("DELETE /api/v1/admin/invites/{code}", gradeHandler.HandleAdminDeleteInvite)
	http.HandleFunc("GET /api/v1/admin/invites/export", gradeHandler.HandleAdminExportInvites)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting rodpenna server on %s", service.Config.Server.Port)
	if service.Config.Grading.Demo {
		logger.Info.Println("Demo mode is on, gradings are synthetic")
	}
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Rodpenna server failed: %v", err)
	}
}
