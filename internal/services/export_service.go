package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var reportHeader = []string{
	"Data", "Período", "Credor (Doc)", "Credor", "Contrato",
	"Produto/Serviço", "Qtd", "Valor", "Documento",
}

// ExportService renders payment reports as CSV, XLSX or PDF.
type ExportService struct {
	reportSvc *ReportService
}

// NewExportService creates a new export service
func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc}
}

// ExportCSV renders the rows as a semicolon-separated CSV file.
func (s *ExportService) ExportCSV(ctx context.Context, rows []PaymentReportRow) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	writer.Comma = ';'

	_ = writer.Write(reportHeader)
	for _, r := range rows {
		_ = writer.Write([]string{
			r.Date, r.Period, r.CreditorDoc, r.CreditorName, r.ContractNumber,
			r.Product, fmt.Sprintf("%d", r.Quantity), r.ValueText, r.DocumentKind,
		})
	}
	_ = writer.Write([]string{"", "", "", "", "", "", "", Totals(rows).String(), "Total"})
	writer.Flush()

	filename := fmt.Sprintf("pagamentos_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders the rows as a spreadsheet.
func (s *ExportService) ExportXLSX(ctx context.Context, rows []PaymentReportRow) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pagamentos"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, h := range reportHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(reportHeader))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	for i, r := range rows {
		line := fmt.Sprintf("%d", i+2)
		_ = f.SetCellValue(sheet, "A"+line, r.Date)
		_ = f.SetCellValue(sheet, "B"+line, r.Period)
		_ = f.SetCellValue(sheet, "C"+line, r.CreditorDoc)
		_ = f.SetCellValue(sheet, "D"+line, r.CreditorName)
		_ = f.SetCellValue(sheet, "E"+line, r.ContractNumber)
		_ = f.SetCellValue(sheet, "F"+line, r.Product)
		_ = f.SetCellValue(sheet, "G"+line, r.Quantity)
		_ = f.SetCellValue(sheet, "H"+line, r.ValueText)
		_ = f.SetCellValue(sheet, "I"+line, r.DocumentKind)
	}

	totalLine := fmt.Sprintf("%d", len(rows)+2)
	_ = f.SetCellValue(sheet, "G"+totalLine, "Total")
	_ = f.SetCellValue(sheet, "H"+totalLine, Totals(rows).String())

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pagamentos_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPDF renders the rows as a simple tabular PDF.
func (s *ExportService) ExportPDF(ctx context.Context, rows []PaymentReportRow) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(80, 10, "Relatorio de Pagamentos")
	pdf.Ln(12)

	widths := []float64{22, 22, 34, 50, 28, 50, 12, 26, 26}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range reportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		cells := []string{
			r.Date, r.Period, r.CreditorDoc, r.CreditorName, r.ContractNumber,
			r.Product, fmt.Sprintf("%d", r.Quantity), r.ValueText, r.DocumentKind,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(218, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(26, 7, Totals(rows).String(), "1", 0, "", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pagamentos_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
