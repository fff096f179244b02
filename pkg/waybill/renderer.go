// Package waybill renders the printable shipping document for an order.
package waybill

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/config"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	pageMargin = 40.0
	lineHeight = 16.0
	rowHeight  = 20.0
	fontFamily = "Helvetica"
)

// column widths of the item table; they add up to the printable width of a letter page
var columns = []struct {
	title string
	width float64
	align string
}{
	{"ITEM DESCRIPTION", 272, "L"},
	{"QTY", 60, "C"},
	{"UNIT PRICE", 100, "R"},
	{"STATUS", 100, "C"},
}

// Renderer turns snapshots into PDF bytes. Output depends only on the snapshot
// and the branding config.
type Renderer struct {
	cfg      config.WaybillConfig
	compress bool
	printer  *message.Printer
}

func NewRenderer(cfg config.WaybillConfig) *Renderer {
	return &Renderer{
		cfg:      cfg,
		compress: true,
		printer:  message.NewPrinter(language.English),
	}
}

// WithCompression toggles stream compression. Uncompressed output keeps page
// text searchable in the raw bytes.
func (r *Renderer) WithCompression(on bool) *Renderer {
	cp := *r
	cp.compress = on
	return &cp
}

// Render always produces a single page. Item rows that do not fit are
// summarised in one closing row. Render never returns partial output: any failure, including a panic inside
// the PDF library, comes back as an internal error and nil bytes.
func (r *Renderer) Render(s Snapshot) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = apperrors.Internal("failed to render waybill", fmt.Errorf("pdf: %v", rec))
		}
	}()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	stamp := s.CreatedAt.UTC()
	if s.CreatedAt.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle("Waybill "+s.Number(), true)
	pdf.SetAuthor(r.cfg.Brand, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.header(pdf, tr, s)
	r.consignee(pdf, tr, s)
	r.items(pdf, tr, s)
	r.footer(pdf, tr, s)

	if pdf.Err() {
		return nil, apperrors.Internal("failed to render waybill", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Internal("failed to render waybill", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *fpdf.Fpdf, tr func(string) string, s Snapshot) {
	top := pdf.GetY()
	width := pageWidth(pdf)

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(width/2, 24, tr(r.cfg.Brand), "", 2, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	for _, line := range r.cfg.Tagline {
		pdf.CellFormat(width/2, 12, tr(line), "", 2, "L", false, 0, "")
	}
	bottom := pdf.GetY()

	pdf.SetXY(pageMargin+width/2, top)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(width/2, 20, "OFFICIAL WAYBILL", "", 2, "R", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(width/2, 14, tr("NO: "+s.Number()), "", 2, "R", false, 0, "")
	pdf.CellFormat(width/2, 14, "DATE: "+s.Date(), "", 2, "R", false, 0, "")

	if pdf.GetY() > bottom {
		bottom = pdf.GetY()
	}
	pdf.SetXY(pageMargin, bottom+10)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+width, pdf.GetY())
	pdf.Ln(14)
}

func (r *Renderer) consignee(pdf *fpdf.Fpdf, tr func(string) string, s Snapshot) {
	width := pageWidth(pdf)

	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(width, lineHeight, "CONSIGNEE", "", 1, "L", false, 0, "")

	fields := [][2]string{
		{"Name:", s.Consignee()},
		{"Phone:", s.PhoneOrNA()},
		{"Destination:", s.Destination()},
	}
	for _, f := range fields {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(80, lineHeight, f[0], "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(width-80, lineHeight, fit(pdf, tr(f[1]), width-86), "", 1, "L", false, 0, "")
	}
	pdf.Ln(12)
}

func (r *Renderer) items(pdf *fpdf.Fpdf, tr func(string) string, s Snapshot) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	if len(s.Lines) == 0 {
		pdf.CellFormat(pageWidth(pdf), rowHeight, NoItemsInOrder, "1", 1, "C", false, 0, "")
		return
	}

	lines := s.Lines
	hidden := 0
	if limit := r.rowsLeft(pdf); len(lines) > limit {
		keep := limit - 1
		if keep < 0 {
			keep = 0
		}
		hidden = len(lines) - keep
		lines = lines[:keep]
	}

	for _, l := range lines {
		name := l.Description
		if name == "" {
			name = UnknownItem
		}
		cells := []string{
			fit(pdf, tr(name), columns[0].width-6),
			fmt.Sprintf("%d", l.Quantity),
			r.money(l.UnitPrice),
			l.Status,
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, rowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if hidden > 0 {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.CellFormat(pageWidth(pdf), rowHeight, fmt.Sprintf(moreItemsTemplate, hidden), "1", 1, "C", false, 0, "")
	}
}

// rowsLeft is how many table rows fit above the footer on the current page.
func (r *Renderer) rowsLeft(pdf *fpdf.Fpdf) int {
	_, h := pdf.GetPageSize()
	footer := 10 + rowHeight + 30 + 10*float64(len(r.cfg.FooterLines))
	n := int((h - pageMargin - footer - pdf.GetY()) / rowHeight)
	if n < 1 {
		return 1
	}
	return n
}

func (r *Renderer) footer(pdf *fpdf.Fpdf, tr func(string) string, s Snapshot) {
	width := pageWidth(pdf)

	pdf.Ln(10)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(width-140, rowHeight, "TOTAL VALUE:", "", 0, "R", false, 0, "")
	pdf.CellFormat(140, rowHeight, r.money(s.Total), "", 1, "R", false, 0, "")

	pdf.Ln(30)
	pdf.SetFont(fontFamily, "I", 8)
	for _, line := range r.cfg.FooterLines {
		pdf.CellFormat(width, 10, tr(line), "", 1, "C", false, 0, "")
	}
}

// money prints an amount with the configured prefix and thousands separators.
func (r *Renderer) money(d decimal.Decimal) string {
	d = d.Round(2)
	abs := d.Abs()
	whole := abs.Truncate(0)
	cents := abs.Sub(whole).Shift(2).IntPart()

	sign := ""
	if d.Sign() < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, r.cfg.CurrencyPrefix, r.printer.Sprintf("%d", whole.IntPart()), cents)
}

func pageWidth(pdf *fpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return w - left - right
}

// fit shortens s with an ellipsis until it fits in width points.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	return s + "..."
}
