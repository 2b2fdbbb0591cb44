// Package export renders stored itineraries into shareable documents.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

const (
	// ContentTypePDF is the media type of RenderPDF output.
	ContentTypePDF = "application/pdf"

	qrImageName = "share-qr"
	qrPixels    = 256
	qrSizeMM    = 36.0

	pageMargin = 18.0
	lineHeight = 6.0
)

// Options controls PDF rendering.
type Options struct {
	// ShareURL is encoded into a QR code on the first page when set.
	ShareURL string
}

// ShareURL builds the public link to an itinerary.
func ShareURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/v1/itineraries/" + id
}

// Filename returns the download name for an itinerary's PDF.
func Filename(itin *itinerary.Itinerary) string {
	return itin.ID + ".pdf"
}

// RenderPDF writes itin as an A4 PDF to w.
func RenderPDF(w io.Writer, itin *itinerary.Itinerary, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(itin.Title, true)
	pdf.SetCreator("WanderWise", true)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(r.footer)
	pdf.AddPage()

	if opts.ShareURL != "" {
		if err := r.shareCode(opts.ShareURL); err != nil {
			return err
		}
	}

	r.header(itin)
	for i := range itin.Days {
		r.day(&itin.Days[i])
	}
	r.list("AI Insights", itin.AIInsights)
	r.list("Packing List", itin.PackingList)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

type renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) shareCode(url string) error {
	png, err := qrcode.Encode(url, qrcode.Medium, qrPixels)
	if err != nil {
		return fmt.Errorf("encoding share code: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	r.pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	pageWidth, _ := r.pdf.GetPageSize()
	r.pdf.ImageOptions(qrImageName, pageWidth-pageMargin-qrSizeMM, pageMargin, qrSizeMM, qrSizeMM, false, opts, 0, url)
	return r.pdf.Error()
}

func (r *renderer) header(itin *itinerary.Itinerary) {
	pageWidth, _ := r.pdf.GetPageSize()
	textWidth := pageWidth - 2*pageMargin - qrSizeMM - 4

	r.pdf.SetFont("Helvetica", "B", 20)
	r.pdf.MultiCell(textWidth, 9, r.tr(itin.Title), "", "L", false)
	r.pdf.Ln(2)

	r.pdf.SetFont("Helvetica", "", 11)
	r.pdf.SetTextColor(90, 90, 90)
	summary := fmt.Sprintf("%s  |  %s  |  Budget %s",
		itin.Destination, pluralDays(itin.Duration), money(itin.TotalBudget, itin.Preferences.Currency))
	r.pdf.MultiCell(textWidth, lineHeight, r.tr(summary), "", "L", false)
	if itin.Preferences.Travelers > 0 {
		r.pdf.MultiCell(textWidth, lineHeight, fmt.Sprintf("Travelers: %d", itin.Preferences.Travelers), "", "L", false)
	}
	r.pdf.SetTextColor(0, 0, 0)

	if y := pageMargin + qrSizeMM + 4; r.pdf.GetY() < y {
		r.pdf.SetY(y)
	}
}

func (r *renderer) day(d *itinerary.DayPlan) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.SetFillColor(232, 240, 254)
	r.pdf.CellFormat(0, 9, r.tr(fmt.Sprintf("Day %d: %s", d.Day, d.Theme)), "", 1, "L", true, 0, "")

	r.pdf.SetFont("Helvetica", "I", 10)
	meta := fmt.Sprintf("%s  |  %.1f km  |  %.0f min travel  |  Daily budget %s",
		d.Date, d.TotalDistance, d.TotalTravelTime, money(d.DailyBudget, ""))
	r.pdf.CellFormat(0, lineHeight, r.tr(meta), "", 1, "L", false, 0, "")

	for _, a := range d.Activities {
		r.pdf.SetFont("Helvetica", "B", 11)
		slot := strings.Trim(a.TimeSlot.Start+"-"+a.TimeSlot.End, "-")
		title := a.Name
		if slot != "" {
			title = slot + "  " + a.Name
		}
		r.pdf.MultiCell(0, lineHeight, r.tr(title), "", "L", false)

		r.pdf.SetFont("Helvetica", "", 10)
		if a.Description != "" {
			r.pdf.MultiCell(0, 5, r.tr(a.Description), "", "L", false)
		}
		details := fmt.Sprintf("%s  |  %s  |  %d min  |  %s",
			a.Location.Address, a.Category, a.Duration, money(a.EstimatedCost, ""))
		r.pdf.MultiCell(0, 5, r.tr(details), "", "L", false)
		for _, tip := range a.Tips {
			r.pdf.MultiCell(0, 5, r.tr("Tip: "+tip), "", "L", false)
		}
		r.pdf.Ln(1)
	}

	if len(d.RecommendedHotels) > 0 {
		r.pdf.SetFont("Helvetica", "B", 11)
		r.pdf.CellFormat(0, lineHeight, "Where to stay", "", 1, "L", false, 0, "")
		r.pdf.SetFont("Helvetica", "", 10)
		for _, h := range d.RecommendedHotels {
			line := fmt.Sprintf("[%s] %s - $%d/night - %.1f stars", h.Tier, h.Name, h.Price, h.Rating)
			r.pdf.CellFormat(0, 5, r.tr(line), "", 1, "L", false, 0, h.BookingURL)
		}
	}

	if d.WeatherTip != "" {
		r.pdf.SetFont("Helvetica", "I", 10)
		r.pdf.MultiCell(0, 5, r.tr("Weather: "+d.WeatherTip), "", "L", false)
	}
}

func (r *renderer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	r.pdf.Ln(4)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		r.pdf.MultiCell(0, 5, r.tr("- "+item), "", "L", false)
	}
}

func (r *renderer) footer() {
	r.pdf.SetY(-12)
	r.pdf.SetFont("Helvetica", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.CellFormat(0, 8, fmt.Sprintf("WanderWise itinerary  |  page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func money(amount float64, currency string) string {
	if currency == "" || strings.EqualFold(currency, "USD") {
		return fmt.Sprintf("$%.0f", amount)
	}
	return fmt.Sprintf("%.0f %s", amount, strings.ToUpper(currency))
}
