package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// artifact layout inside the media root
const ReportsSubdir = "generated_reports"

// RenderPDF writes the report as a paginated PDF named
// report_<timestamp>_<first-8-of-jobID>.pdf under reportsDir (created if
// absent) and returns the path relative to the media root.
func RenderPDF(rep *Report, reportsDir, jobID string) (string, error) {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	fileName := fmt.Sprintf("report_%s_%s.pdf", time.Now().Format("20060102_150405"), ShortJobID(jobID))

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 24, "Inventory Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Generated On: "+rep.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, "Total Stock Value of All Products: $"+Money(rep.TotalStockValue), "", 1, "L", false, 0, "")
	pdf.Ln(20)

	inventoryRows := make([][]string, 0, len(rep.InventoryLevels))
	for _, line := range rep.InventoryLevels {
		alert := "No"
		if line.LowStockAlert {
			alert = "Yes"
		}
		inventoryRows = append(inventoryRows, []string{
			line.ProductName,
			humanize.Comma(int64(line.Inventory)),
			"$" + Money(line.Price),
			"$" + Money(line.StockValue),
			alert,
		})
	}
	drawTable(pdf,
		[]string{"Product Name", "Inventory", "Price", "Stock Value", "Low Stock Alert"},
		[]float64{150, 80, 80, 100, 100},
		inventoryRows,
		[3]int{245, 245, 220}) // beige body

	pdf.Ln(30)

	supplierRows := make([][]string, 0, len(rep.SupplierPerformance))
	for _, s := range rep.SupplierPerformance {
		supplierRows = append(supplierRows, []string{
			s.SupplierName,
			humanize.Comma(int64(s.TotalProductsSupplied)),
			humanize.Comma(int64(s.TotalInventory)),
			"$" + Money(s.TotalStockValue),
		})
	}
	drawTable(pdf,
		[]string{"Supplier Name", "Products Supplied", "Total Inventory", "Total Stock Value"},
		[]float64{150, 120, 120, 120},
		supplierRows,
		[3]int{255, 255, 224}) // light yellow body

	path := filepath.Join(reportsDir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write PDF: %w", err)
	}
	return filepath.Join(ReportsSubdir, fileName), nil
}

// drawTable renders a full-grid table with a grey bold header and filled body.
func drawTable(pdf *fpdf.Fpdf, headers []string, widths []float64, rows [][]string, bodyFill [3]int) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 22, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(bodyFill[0], bodyFill[1], bodyFill[2])
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 18, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// Money formats a decimal with a thousands separator and two decimals.
func Money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// ShortJobID returns the artifact suffix component: the first 8 characters of
// the job id.
func ShortJobID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
