package quote_pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"toiture-backend/internal/storage"
)

const (
	defaultValidDays     = 30
	defaultWarrantyYears = 10
)

type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
	RBQ     string
}

// Quote is the content of one document. Scope lines replace the default scope when given.
type Quote struct {
	Number         string
	Date           time.Time
	Client         storage.Client
	RoofArea       float64
	ParapetArea    float64
	EffectiveTotal float64
	Scope          []string
	Notes          string
	ValidDays      int
	WarrantyYears  int
}

type QuoteService struct {
	company Company
}

func NewQuoteService(company Company) *QuoteService {
	return &QuoteService{company: company}
}

var (
	grey      = &props.Color{Red: 90, Green: 90, Blue: 90}
	headerBg  = &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	summaryBg = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
)

func (s *QuoteService) GenerateQuote(q Quote) ([]byte, error) {
	const op = "service.quote_pdf.GenerateQuote"

	if q.ValidDays <= 0 {
		q.ValidDays = defaultValidDays
	}
	if q.WarrantyYears <= 0 {
		q.WarrantyYears = defaultWarrantyYears
	}
	if q.Date.IsZero() {
		q.Date = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()

	m := maroto.New(cfg)

	// страница 1: стороны и работы, страница 2: цена, гарантия, подписи
	first := page.New().Add(s.header(q)...)
	first.Add(clientBlock(q)...)
	first.Add(section(sectionScope, scopeLines(q))...)
	first.Add(section(sectionDuties, duties)...)
	first.Add(section(sectionCautions, cautions)...)

	second := page.New().Add(s.header(q)...)
	second.Add(priceTable(QuoteAmounts(q.EffectiveTotal))...)
	if strings.TrimSpace(q.Notes) != "" {
		second.Add(paragraph(q.Notes, fontstyle.Italic))
	}
	second.Add(section(sectionWarranty, []bilingual{warrantyText(q.WarrantyYears), validityText(q.ValidDays)})...)
	second.Add(signatures()...)

	m.AddPages(first, second)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate PDF: %w", op, err)
	}

	return doc.GetBytes(), nil
}

func (s *QuoteService) header(q Quote) []core.Row {
	contact := joinNonEmpty([]string{s.company.Address, s.company.Phone, s.company.Email}, " | ")
	if s.company.RBQ != "" {
		contact = joinNonEmpty([]string{contact, "RBQ " + s.company.RBQ}, " | ")
	}

	return []core.Row{
		row.New(10).Add(
			col.New(7).Add(text.New(s.company.Name, props.Text{Size: 14, Style: fontstyle.Bold})),
			col.New(5).Add(text.New(titleQuote.String(), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New(contact, props.Text{Size: 7, Color: grey})),
			col.New(4).Add(text.New(
				fmt.Sprintf("%s %s  %s %s", labelNumber.FR, q.Number, labelDate.FR, q.Date.Format("2006-01-02")),
				props.Text{Size: 8, Align: align.Right},
			)),
		),
		row.New(4),
	}
}

func clientBlock(q Quote) []core.Row {
	label := props.Text{Size: 8, Style: fontstyle.Bold}
	value := props.Text{Size: 8}

	line := func(l bilingual, v string) core.Row {
		return row.New(6).Add(
			col.New(4).Add(text.New(l.String(), label)),
			col.New(8).Add(text.New(v, value)),
		)
	}

	return []core.Row{
		line(labelClient, q.Client.Nom),
		line(labelAddress, q.Client.Adresse),
		line(labelPhone, q.Client.Telephone),
		line(labelArea, fmt.Sprintf("%s pi² + %s pi² (parapets)", formatArea(q.RoofArea), formatArea(q.ParapetArea))),
		row.New(4),
	}
}

func scopeLines(q Quote) []bilingual {
	var out []bilingual
	for _, l := range q.Scope {
		if l = strings.TrimSpace(l); l != "" {
			// свободный текст не переводим
			out = append(out, bilingual{FR: l})
		}
	}
	if len(out) == 0 {
		return defaultScope
	}
	return out
}

func section(title bilingual, items []bilingual) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New(title.String(), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				Left:  1,
				Top:   1,
			})).WithStyle(headerBg),
		),
	}

	for i, it := range items {
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1)+".", props.Text{Size: 8, Align: align.Right})),
			col.New(11).Add(text.New(it.FR, props.Text{Size: 8, Left: 2})),
		))
		if it.EN != "" {
			rows = append(rows, row.New(5).Add(
				col.New(1),
				col.New(11).Add(text.New(it.EN, props.Text{Size: 7, Left: 2, Style: fontstyle.Italic, Color: grey})),
			))
		}
	}

	return append(rows, row.New(3))
}

func priceTable(a Amounts) []core.Row {
	label := props.Text{Size: 9, Align: align.Right, Right: 2}
	value := props.Text{Size: 9, Align: align.Right, Right: 2}
	bold := props.Text{Size: 10, Align: align.Right, Right: 2, Style: fontstyle.Bold}

	line := func(l bilingual, v string, style props.Text) core.Row {
		return row.New(7).Add(
			col.New(8).Add(text.New(l.String(), style)).WithStyle(summaryBg),
			col.New(4).Add(text.New(v, style)).WithStyle(summaryBg),
		)
	}

	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New(sectionPrice.String(), props.Text{Size: 9, Style: fontstyle.Bold})),
		),
		line(labelSubtotal, FormatMoney(a.Subtotal), label),
		line(labelTPS, FormatMoney(a.TPS), value),
		line(labelTVQ, FormatMoney(a.TVQ), value),
		line(labelTotal, FormatMoney(a.Total), bold),
		row.New(4),
	}
	return rows
}

func paragraph(s string, style fontstyle.Type) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Style: style})))
}

func signatures() []core.Row {
	lineStyle := props.Text{Size: 8, Align: align.Center, Color: grey}
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: grey}

	return []core.Row{
		row.New(16),
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(labelContractor.String(), labelStyle)),
			col.New(6).Add(text.New(labelCustomerSig.String(), labelStyle)),
		),
		row.New(10),
		row.New(6).Add(
			col.New(6).Add(text.New(labelSignedDate.String()+" : ______________", lineStyle)),
			col.New(6).Add(text.New(labelSignedDate.String()+" : ______________", lineStyle)),
		),
	}
}

func formatArea(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
