package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	calcget "toiture-backend/http-server/calculator/get"
	calcopen "toiture-backend/http-server/calculator/open"
	calcsave "toiture-backend/http-server/calculator/save"
	calcupdate "toiture-backend/http-server/calculator/update"
	"toiture-backend/http-server/estimate/calculate"
	generate_excel "toiture-backend/http-server/generate-report/generate-excel"
	generate_pdf "toiture-backend/http-server/generate-report/generate-pdf"
	pricesget "toiture-backend/http-server/prices/get"
	pricesupdate "toiture-backend/http-server/prices/update"
	subdelete "toiture-backend/http-server/submissions/delete"
	subget "toiture-backend/http-server/submissions/get"
	subsave "toiture-backend/http-server/submissions/save"
	subupdate "toiture-backend/http-server/submissions/update"
	"toiture-backend/internal/config"
	"toiture-backend/internal/middleware/auth"
	"toiture-backend/internal/service"
	genexcel "toiture-backend/internal/service/generate-excel"
	quote_pdf "toiture-backend/internal/service/quote-pdf"
)

const frontendDir = "./frontend-dist"

type submissionStore interface {
	subget.SubmissionProvider
	subsave.SubmissionCreator
	subupdate.SubmissionPatcher
	subdelete.SubmissionDeleter
}

type dependencies struct {
	submissions submissionStore
	prices      *service.PriceService
	calculator  *service.CalculatorService
	excel       *genexcel.GenerateExcelService
	quotes      *quote_pdf.QuoteService
}

func routes(cfg config.Config, log *slog.Logger, deps dependencies) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Заявки
	router.Get("/api/submissions", subget.GetSubmissions(log, deps.submissions))
	router.Get("/api/submissions/{id}", subget.GetSubmission(log, deps.submissions))
	router.Post("/api/submissions", subsave.SaveSubmission(log, deps.submissions))
	router.Patch("/api/submissions/{id}", subupdate.UpdateSubmission(log, deps.submissions))
	router.Delete("/api/submissions/{id}", subdelete.DeleteSubmission(log, deps.submissions))

	router.Post("/api/estimate/calculation", calculate.CalculateEstimate(log, deps.calculator))

	// Калькулятор, "_" без заявки
	router.Post("/api/calculator/{id}/open", calcopen.OpenCalculator(log, deps.calculator))
	router.Post("/api/calculator/{id}/reset", calcopen.ResetCalculator(log, deps.calculator))
	router.Get("/api/calculator/{id}", calcget.GetCalculator(log, deps.calculator))
	router.Patch("/api/calculator/{id}", calcupdate.UpdateCalculator(log, deps.calculator))
	router.Post("/api/calculator/{id}/save", calcsave.SaveCalculator(log, deps.calculator))
	router.Delete("/api/calculator/{id}", calcsave.CloseCalculator(log, deps.calculator))

	router.Get("/api/prices", pricesget.GetPrices(log, deps.prices))

	router.Post("/api/report/quote/{id}", generate_pdf.GenerateQuotePDF(log, deps.calculator, deps.quotes))
	router.Get("/api/report/excel/{id}", generate_excel.GenerateReportExcel(log, deps.calculator, deps.excel))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Put("/prices", pricesupdate.UpdatePrices(log, deps.prices))
	adminRouter.Delete("/prices", pricesupdate.ResetPrices(log, deps.prices))

	router.Mount("/api/admin", adminRouter)

	mountFrontend(router, log)

	return router
}

// mountFrontend serves the built SPA when it is shipped next to the binary.
func mountFrontend(router *chi.Mux, log *slog.Logger) {
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)

	// SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})
}
