package generate_excel

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/service"
	genexcel "toiture-backend/internal/service/generate-excel"
)

type StateProvider interface {
	State(id string) (service.Snapshot, error)
}

type ExcelGenerator interface {
	GenerateExcel(r genexcel.Report) ([]byte, error)
}

// GenerateReportExcel exports the open calculator session as a workbook.
func GenerateReportExcel(log *slog.Logger, sessions StateProvider, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		id := calculator.ID(r)

		snap, err := sessions.State(id)
		if err != nil {
			code, msg := calculator.Status(err)
			http.Error(w, msg, code)
			return
		}

		report := genexcel.Report{
			Estimate: snap.Estimate,
			Prices:   snap.UnitPrices,
			Results:  snap.Results,
		}
		if snap.PrefilledData != nil {
			report.ClientName = snap.PrefilledData.Client.Nom
			report.Address = snap.PrefilledData.Client.Adresse
		}

		excelBytes, err := gen.GenerateExcel(report)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Erreur interne", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Estimation_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
