package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// A4 geometry in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 50.0

	rowHeight  = 30.0
	lineHeight = 15.0
	amountColX = pageWidth - 200.0
)

// draw paints a resolved layout onto a single A4 page.
func draw(w io.Writer, l *Layout) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	y := margin + 30.0
	for i, line := range l.Brand {
		if i == 0 {
			doc.SetFont("Helvetica", "B", 36)
		} else {
			doc.SetFont("Helvetica", "", 10)
		}
		doc.Text(margin, y, line)
		if i == 0 {
			y += 20.0
		} else {
			y += 12.0
		}
	}

	doc.SetFont("Helvetica", "B", 20)
	doc.Text(pageWidth-150.0, margin+30.0, "INVOICE")

	y = 100.0
	doc.SetFont("Helvetica", "", 10)
	for _, line := range l.Address {
		doc.Text(margin, y, line)
		y += lineHeight
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.Text(amountColX, 100.0, l.Number)
	doc.SetFont("Helvetica", "", 12)
	doc.Text(amountColX, 120.0, l.IssueDate)

	y = 140.0
	if len(l.BillTo) > 0 {
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(margin, y, "BILL TO")
		y += lineHeight
		doc.SetFont("Helvetica", "", 10)
		for _, line := range l.BillTo {
			doc.Text(margin, y, line)
			y += lineHeight
		}
	}

	y = 200.0
	tableRow(doc, y, rowHeight)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin+5.0, y+lineHeight+4.0, "ITEM")
	doc.Text(amountColX+5.0, y+lineHeight+4.0, "COST")
	y += rowHeight

	for _, row := range l.Rows {
		h := rowHeight + lineHeight*float64(len(row.Lines)-1)
		tableRow(doc, y, h)

		textY := y + lineHeight + 4.0
		for i, line := range row.Lines {
			if i == 0 {
				doc.SetFont("Helvetica", "", 11)
			} else {
				doc.SetFont("Helvetica", "", 10)
			}
			doc.Text(margin+5.0, textY, line)
			textY += lineHeight
		}

		doc.SetFont("Helvetica", "", 11)
		doc.Text(amountColX+5.0, y+lineHeight+4.0, row.Amount)
		y += h
	}

	y += 20.0
	tableRow(doc, y, rowHeight)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin+5.0, y+lineHeight+4.0, "Due")
	doc.SetFont("Helvetica", "", 11)
	doc.Text(amountColX+5.0, y+lineHeight+4.0, l.DueLabel)
	y += rowHeight

	tableRow(doc, y, rowHeight)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(margin+5.0, y+lineHeight+4.0, "Total")
	doc.Text(amountColX+5.0, y+lineHeight+4.0, l.Total)

	if len(l.WireLines) > 0 {
		y = pageHeight - 120.0
		doc.SetDrawColor(0, 0, 0)
		doc.SetLineWidth(1.0)
		doc.Line(margin, y, pageWidth-margin, y)
		y += 20.0

		doc.SetFont("Helvetica", "B", 10)
		centerText(doc, y, "WIRE DETAILS")
		y += lineHeight

		doc.SetFont("Helvetica", "", 8)
		for _, line := range l.WireLines {
			centerText(doc, y, line)
			y += 12.0
		}
	}

	return doc.Output(w)
}

// tableRow draws the border box of one table row: horizontal rules top
// and bottom, verticals at both margins and at the amount column.
func tableRow(doc *fpdf.Fpdf, y, height float64) {
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(1.0)
	doc.Line(margin, y, pageWidth-margin, y)
	doc.Line(margin, y+height, pageWidth-margin, y+height)
	doc.Line(margin, y, margin, y+height)
	doc.Line(amountColX, y, amountColX, y+height)
	doc.Line(pageWidth-margin, y, pageWidth-margin, y+height)
}

func centerText(doc *fpdf.Fpdf, y float64, s string) {
	doc.Text((pageWidth-doc.GetStringWidth(s))/2.0, y, s)
}
