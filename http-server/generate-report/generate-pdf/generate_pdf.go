package generate_pdf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"toiture-backend/http-server/calculator"
	"toiture-backend/internal/service"
	quote_pdf "toiture-backend/internal/service/quote-pdf"
)

type StateProvider interface {
	State(id string) (service.Snapshot, error)
}

type QuoteGenerator interface {
	GenerateQuote(q quote_pdf.Quote) ([]byte, error)
}

// Request is the optional body. Every field has a default.
type Request struct {
	Number        string   `json:"number"`
	Date          string   `json:"date"`
	Scope         []string `json:"scope"`
	Notes         string   `json:"notes"`
	ValidDays     int      `json:"validDays"`
	WarrantyYears int      `json:"warrantyYears"`
}

// GenerateQuotePDF renders the bilingual quote of the open calculator session.
func GenerateQuotePDF(log *slog.Logger, sessions StateProvider, gen QuoteGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateQuotePDF"

		id := calculator.ID(r)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Données invalides", http.StatusBadRequest)
			return
		}

		now := time.Now()
		date := now
		if req.Date != "" {
			d, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				http.Error(w, "Date invalide", http.StatusBadRequest)
				return
			}
			date = d
		}

		snap, err := sessions.State(id)
		if err != nil {
			code, msg := calculator.Status(err)
			http.Error(w, msg, code)
			return
		}

		q := quote_pdf.Quote{
			Number:         req.Number,
			Date:           date,
			RoofArea:       snap.Estimate.Geometry.RoofArea,
			ParapetArea:    snap.Estimate.Geometry.ParapetArea,
			EffectiveTotal: snap.Results.Summary.EffectiveTotal,
			Scope:          req.Scope,
			Notes:          req.Notes,
			ValidDays:      req.ValidDays,
			WarrantyYears:  req.WarrantyYears,
		}
		if q.Number == "" {
			q.Number = now.Format("S-20060102-150405")
		}
		if snap.PrefilledData != nil {
			q.Client = snap.PrefilledData.Client
		}

		pdfBytes, err := gen.GenerateQuote(q)
		if err != nil {
			log.Error("failed to generate quote", "op", op, "err", err)
			http.Error(w, "Erreur interne", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Soumission_%s.pdf", q.Number)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(pdfBytes)
	}
}
