// Package pdf genera el comprobante imprimible de una boleta de depósito.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de depósito  │  N° operación + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + id de cliente                            │
//	│  DEPÓSITO: banco | monto | moneda | contraparte             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUCURSAL + registrado por + notas                          │
//	│  FOOTER: QR de verificación + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 150, Green: 110, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa ports.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	company string
}

// NewReceiptGenerator construye el generador. company aparece en el encabezado.
func NewReceiptGenerator(company string) *ReceiptGenerator {
	return &ReceiptGenerator{company: nonEmpty(company, "Goldfolio")}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) Generate(data ports.ReceiptPDFData) ([]byte, error) {
	r := data.Receipt
	if r == nil {
		return nil, fmt.Errorf("pdf: boleta nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de depósito "+r.OperationNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(g.company, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(r))
	m.AddRows(depositRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(originRow(data))
	if r.Notes != "" {
		m.AddRows(notesRow(r.Notes))
	}
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company string, r *entity.DepositReceipt) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("COMPROBANTE DE DEPÓSITO", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("N° de operación", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(r.OperationNumber, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+r.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func clientRow(r *entity.DepositReceipt) core.Row {
	return row.New(14).Add(col.New(12).Add(
		section("CLIENTE"),
		text.New(r.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New("Id de cliente: "+nonEmpty(r.ClientID, "-"), props.Text{Size: 8, Top: 11, Color: colorGray}),
	))
}

func depositRows(r *entity.DepositReceipt) []core.Row {
	field := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Top: 1, Color: colorGray}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(section("DEPÓSITO"))),
		row.New(12).Add(
			field("Banco", r.Bank),
			field("Monto", FormatAmount(r.DepositAmount)+" "+string(r.DepositCurrency)),
			field("Moneda contraparte", string(r.CounterpartyCurrency)),
		),
	}
}

func originRow(data ports.ReceiptPDFData) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Sucursal: %s   |   Registrado por: %s",
			nonEmpty(data.BranchName, "-"),
			nonEmpty(data.CreatedBy, "-"),
		), props.Text{Size: 8, Top: 3, Color: colorGray}),
	))
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		section("NOTAS"),
		text.New(notes, props.Text{Size: 8, Top: 6}),
	))
}

// footerRow: QR con los datos que identifican la operación + leyenda.
func footerRow(r *entity.DepositReceipt) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(verificationCode(r), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("El número de operación es único por banco. Un segundo registro del mismo número es rechazado.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Id de boleta: "+r.ID, props.Text{Size: 7, Top: 20, Left: 3, Color: colorGray}),
		),
	)
}

func section(label string) core.Component {
	return text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
}

func verificationCode(r *entity.DepositReceipt) string {
	return strings.Join([]string{r.ID, r.Bank, r.OperationNumber, r.DepositAmount.StringFixed(2), string(r.DepositCurrency)}, "|")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatAmount formatea con punto de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
