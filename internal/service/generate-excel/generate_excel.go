package generate_excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
)

const sheet = "Estimation"

// Report is one calculator state to export.
type Report struct {
	ClientName string
	Address    string
	Estimate   estimate.Estimate
	Prices     pricing.Table
	Results    estimate.Result
}

type total struct {
	label string
	value float64
}

type GenerateExcelService struct{}

func NewGenerateService() *GenerateExcelService {
	return &GenerateExcelService{}
}

var headers = []string{
	"Poste / Item",
	"Quantité / Qty",
	"Prix unitaire / Unit price",
	"Montant / Amount",
	"Source",
}

func (g *GenerateExcelService) GenerateExcel(r Report) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: rename sheet: %w", op, err)
	}

	// --- СТИЛИ ---
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}
	moneyFmt := `#,##0.00 "$"`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("%s: money style: %w", op, err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("%s: total style: %w", op, err)
	}

	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	rowNum := 2
	e := r.Estimate
	b := r.Results.Breakdown

	for _, m := range constants.Materials {
		qty := r.Results.Quantities[m]
		label := constants.MaterialLabels[m]

		f.SetCellValue(sheet, cellName(1, rowNum), label.FR+" / "+label.EN)
		f.SetCellValue(sheet, cellName(2, rowNum), qty)
		f.SetCellValue(sheet, cellName(3, rowNum), r.Prices.Get(pricing.MaterialKey(m, e.Finish, e.Drain)))
		f.SetCellValue(sheet, cellName(4, rowNum), b.MaterialCost[m])
		f.SetCellValue(sheet, cellName(5, rowNum), string(e.Quantities[m].Source))
		f.SetCellStyle(sheet, cellName(3, rowNum), cellName(4, rowNum), moneyStyle)
		rowNum++
	}

	f.SetCellValue(sheet, cellName(1, rowNum), "Main-d'œuvre / Labour")
	f.SetCellValue(sheet, cellName(2, rowNum), r.Results.Hours*e.Headcount)
	f.SetCellValue(sheet, cellName(3, rowNum), r.Prices.Get(pricing.LaborHour))
	f.SetCellValue(sheet, cellName(4, rowNum), b.LaborCost)
	f.SetCellValue(sheet, cellName(5, rowNum), string(e.Hours.Source))
	f.SetCellStyle(sheet, cellName(3, rowNum), cellName(4, rowNum), moneyStyle)
	rowNum++

	f.SetCellValue(sheet, cellName(1, rowNum), "Administration")
	f.SetCellValue(sheet, cellName(2, rowNum), r.Results.Hours)
	f.SetCellValue(sheet, cellName(3, rowNum), r.Prices.Get(pricing.AdminRate))
	f.SetCellValue(sheet, cellName(4, rowNum), b.AdministrationCost)
	f.SetCellStyle(sheet, cellName(3, rowNum), cellName(4, rowNum), moneyStyle)
	rowNum += 2

	s := r.Results.Summary
	totals := []total{
		{"Matériaux / Materials", b.MaterialTotal},
		{"Sous-total / Subtotal", b.Subtotal},
		{"Profit", b.Profit},
		{"Total calculé / Computed total", s.ComputedTotal},
	}
	if s.OverrideActive {
		totals = append(totals,
			total{"Total négocié / Negotiated total", s.EffectiveTotal},
			total{"Écart de profit / Profit difference", s.ProfitDifference},
		)
	}
	totals = append(totals,
		total{"Profit total", s.ProfitTotal},
		total{"TPS (5 %)", s.TPS},
		total{"TVQ (9,975 %)", s.TVQ},
		total{"Total avec taxes / Total with taxes", s.TotalWithTaxes},
		total{"Prix au pi² / Price per sq ft", s.PricePerArea},
		total{"Profit par jour / Profit per day", s.ProfitPerDay},
	)

	for _, t := range totals {
		f.SetCellValue(sheet, cellName(1, rowNum), t.label)
		f.SetCellValue(sheet, cellName(4, rowNum), t.value)
		f.SetCellStyle(sheet, cellName(4, rowNum), cellName(4, rowNum), totalStyle)
		rowNum++
	}

	rowNum++
	info := [][2]any{
		{"Client", r.ClientName},
		{"Adresse / Address", r.Address},
		{"Superficie totale / Total area (pi²)", r.Results.TotalArea},
		{"Complexité / Complexity", string(e.Complexity)},
		{"Catégorie / Size", string(r.Results.Labor.SizeCategory)},
		{"Heures / Hours", r.Results.Hours},
		{"Jours / Days", s.WorkDays},
		{"Profit (%)", s.ProfitPercent},
	}
	for _, kv := range info {
		f.SetCellValue(sheet, cellName(1, rowNum), kv[0])
		f.SetCellValue(sheet, cellName(2, rowNum), kv[1])
		rowNum++
	}

	// --- ФИНАЛЬНЫЕ ШТРИХИ ---
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	f.SetColWidth(sheet, "A", "A", 42)
	f.SetColWidth(sheet, "B", "E", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
