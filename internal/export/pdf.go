package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"institute-events/models"
)

const (
	DocumentFile = "Events_Calendar.pdf"
	DocumentMIME = "application/pdf"
)

const (
	pageWidth   = 210.0
	marginX     = 15.0
	marginY     = 15.0
	lineHeight  = 5.0
	cellPadding = 2.5
	legendBox   = 5.0
)

var (
	columnTitles = []string{"S.N.", "DAY, DATE &\nTIME", "EVENT", "VENUE"}
	columnWidths = []float64{15, 35, 100, 30}
	columnAlign  = []string{"C", "C", "L", "C"}
	headerAlign  = []string{"C", "C", "C", "C"}
	headerFill   = RGB{200, 200, 200}
)

// Document renders the calendar of events as an A4 PDF.
func Document(events []models.Event, opts Options, now time.Time) (*bytes.Buffer, error) {
	selected := Select(events, opts.Selection)

	details := DetailsText(opts.Selection.Month, selected)
	if opts.AdditionalDetails != nil {
		details = *opts.AdditionalDetails
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = DefaultColors()
	}
	subColor, err := ParseHex(opts.SubTitleColor)
	if err != nil {
		subColor, _ = ParseHex(DefaultSubTitleColor)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(false, marginY)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	contentWidth := pageWidth - 2*marginX

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginX, 10)
	pdf.CellFormat(contentWidth, 8, tr(opts.MainTitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(subColor[0], subColor[1], subColor[2])
	pdf.CellFormat(contentWidth, 7, tr(opts.SubTitle), "", 1, "C", false, 0, "")

	y := pdf.GetY() + 2
	if details != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(marginX, y)
		pdf.MultiCell(contentWidth, lineHeight, tr(details), "", "C", false)
		y = pdf.GetY() + 3
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginX, y)
	pdf.CellFormat(contentWidth, lineHeight, "As on "+now.Format("02.01.2006"), "", 1, "C", false, 0, "")
	y = pdf.GetY() + 5

	y = drawLegend(pdf, tr, colors, y)

	rows := make([][]string, len(selected))
	for i, e := range selected {
		rows[i] = documentRow(i+1, e, opts.ShowOrganizer)
	}

	y = drawTableHeader(pdf, tr, y+5)
	_, pageHeight := pdf.GetPageSize()
	for i, row := range rows {
		h := rowHeight(pdf, tr, row)
		if y+h > pageHeight-marginY {
			pdf.AddPage()
			y = drawTableHeader(pdf, tr, marginY)
		}
		drawRow(pdf, tr, row, columnAlign, colors.For(selected[i].Category), y, h)
		y += h
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &buf, nil
}

func documentRow(n int, e models.Event, showOrganizer bool) []string {
	day := e.EventDate
	if d := e.Date(); !d.IsZero() {
		day = d.Format("Monday") + "\n" + d.Format("02.01.2006")
	}
	when := fmt.Sprintf("%s\n\n%s TO\n%s", day, models.ShortTime(e.StartTime), models.ShortTime(e.EndTime))

	description := strings.TrimSpace(e.Description)
	if description == "" {
		description = "-"
	}
	event := e.Title + "\n\n" + description
	if showOrganizer {
		event += "\n\nOrganizer: " + e.Organizer
	}
	return []string{strconv.Itoa(n), when, event, e.Venue}
}

func drawLegend(pdf *fpdf.Fpdf, tr func(string) string, colors Colors, y float64) float64 {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)

	x := marginX
	labels := colors.Legend()
	for i, label := range labels {
		c := colors[label]
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.Rect(x, y, legendBox, legendBox, "FD")
		pdf.SetXY(x+legendBox+3, y)
		pdf.CellFormat(80, legendBox, tr(label), "", 0, "L", false, 0, "")

		if i%2 == 0 {
			x = pageWidth / 2
		} else {
			x = marginX
			y += 8
		}
	}
	if len(labels)%2 != 0 {
		y += 8
	}
	return y
}

func drawTableHeader(pdf *fpdf.Fpdf, tr func(string) string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	h := max(rowHeight(pdf, tr, columnTitles), 12)
	drawRow(pdf, tr, columnTitles, headerAlign, headerFill, y, h)
	pdf.SetFont("Helvetica", "", 10)
	return y + h
}

func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, cells []string) float64 {
	lines := 1
	for i, text := range cells {
		lines = max(lines, len(cellLines(pdf, tr, text, columnWidths[i]-2*cellPadding)))
	}
	return float64(lines)*lineHeight + 2*cellPadding
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, cells, align []string, fill RGB, y, h float64) {
	pdf.SetFillColor(fill[0], fill[1], fill[2])
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)

	x := marginX
	for i, text := range cells {
		w := columnWidths[i]
		pdf.Rect(x, y, w, h, "FD")

		lines := cellLines(pdf, tr, text, w-2*cellPadding)
		top := y + (h-float64(len(lines))*lineHeight)/2
		for j, line := range lines {
			pdf.SetXY(x+cellPadding, top+float64(j)*lineHeight)
			pdf.CellFormat(w-2*cellPadding, lineHeight, line, "", 0, align[i], false, 0, "")
		}
		x += w
	}
}

// cellLines wraps text to width, keeping explicit line breaks and blank lines.
func cellLines(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}
		for _, l := range pdf.SplitLines([]byte(tr(para)), width) {
			out = append(out, string(l))
		}
	}
	return out
}
