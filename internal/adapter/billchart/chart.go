// Package billchart renders bill trend bar charts as PDF artifacts.
package billchart

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Point is one bar of the trend chart.
type Point struct {
	Label  string
	Amount float64
}

// Brand palette.
var (
	brandBlue = rgb{0, 120, 212}
	darkGrey  = rgb{51, 51, 51}
	lightGrey = rgb{204, 204, 204}
)

type rgb struct{ r, g, b int }

// Chart geometry on an A4 landscape page, in millimetres.
const (
	pageW     = 297.0
	pageH     = 210.0
	marginX   = 25.0
	plotTop   = 45.0
	plotBot   = 175.0
	barGapPct = 0.35
)

// Render draws a bar chart of the given points and writes it to path.
func Render(path, title string, points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("chart needs at least one data point")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	// Title and brand mark.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(darkGrey.r, darkGrey.g, darkGrey.b)
	pdf.Text(marginX, 25, title)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(brandBlue.r, brandBlue.g, brandBlue.b)
	pdf.Text(pageW-marginX-35, 20, "MERIDIAN MOBILE")

	maxAmount := 0.0
	for _, p := range points {
		if p.Amount > maxAmount {
			maxAmount = p.Amount
		}
	}
	if maxAmount <= 0 {
		maxAmount = 1
	}

	plotW := pageW - 2*marginX
	plotH := plotBot - plotTop
	slot := plotW / float64(len(points))
	barW := slot * (1 - barGapPct)

	// Horizontal gridlines at quarter intervals.
	pdf.SetDrawColor(lightGrey.r, lightGrey.g, lightGrey.b)
	pdf.SetTextColor(darkGrey.r, darkGrey.g, darkGrey.b)
	pdf.SetFont("Helvetica", "", 8)
	for i := 0; i <= 4; i++ {
		y := plotBot - plotH*float64(i)/4
		pdf.Line(marginX, y, pageW-marginX, y)
		pdf.Text(marginX-14, y+1.5, fmt.Sprintf("£%.0f", maxAmount*float64(i)/4))
	}

	// Bars with value labels above and period labels below.
	pdf.SetFillColor(brandBlue.r, brandBlue.g, brandBlue.b)
	pdf.SetDrawColor(darkGrey.r, darkGrey.g, darkGrey.b)
	for i, p := range points {
		h := plotH * p.Amount / maxAmount
		x := marginX + slot*float64(i) + (slot-barW)/2
		pdf.Rect(x, plotBot-h, barW, h, "FD")

		pdf.SetFont("Helvetica", "B", 10)
		label := fmt.Sprintf("£%.0f", p.Amount)
		pdf.Text(x+barW/2-pdf.GetStringWidth(label)/2, plotBot-h-3, label)

		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(x+barW/2-pdf.GetStringWidth(p.Label)/2, plotBot+7, p.Label)
	}

	// Axis captions.
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageW/2-12, plotBot+16, "Billing Period")
	pdf.TransformBegin()
	pdf.TransformRotate(90, marginX-18, pageH/2)
	pdf.Text(marginX-18, pageH/2, "Amount (£)")
	pdf.TransformEnd()

	return pdf.OutputFileAndClose(path)
}
