package report

import (
	"delivery-route-map/internal/domain"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

const (
	reportTitle = "Relatório de Entregas"

	// Layout in points on an A4 page (595x842), measured from the top.
	marginLeft = 40.0
	titleY     = 42.0
	firstLineY = 82.0
	lineHeight = 14.0
	lastLineY  = 782.0
	fontSize   = 10.0
	titleSize  = 14.0
	fontFamily = "Helvetica"
)

// PDFReport renders the delivery list as a paginated A4 PDF, one line per
// delivery.
type PDFReport struct{}

func NewPDFReport() *PDFReport {
	return &PDFReport{}
}

func (PDFReport) RenderDeliveries(w io.Writer, deliveries []*domain.Delivery) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(reportTitle, true)
	// Core fonts are cp1252; addresses arrive as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.Text(marginLeft, titleY, tr(reportTitle))
	pdf.SetFont(fontFamily, "", fontSize)

	y := firstLineY
	for _, d := range deliveries {
		if y > lastLineY {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", fontSize)
			y = titleY
		}
		pdf.Text(marginLeft, y, tr(ReportLine(d)))
		y += lineHeight
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render delivery report: %w", err)
	}
	return nil
}

// ReportLine formats one delivery as "#id - address (city) - lat:.. lon:..".
// Missing values are shown as "-".
func ReportLine(d *domain.Delivery) string {
	line := "#" + strconv.Itoa(d.ID) + " - " + d.Address
	if d.City != "" {
		line += " (" + d.City + ")"
	}
	return line + " - lat:" + optionalFloat(d.Lat) + " lon:" + optionalFloat(d.Lon)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
