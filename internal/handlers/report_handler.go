package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// Payments renders the filtered payment report. The format query parameter
// selects csv, xlsx or pdf; without it the rows come back as JSON.
func (h *ReportHandler) Payments(c *gin.Context) {
	query := repository.NewListQuery()
	query.PerPage = 0 // reports are not paginated
	query.Filters["period"] = c.Query("period")
	query.Filters["start_date"] = c.Query("start_date")
	query.Filters["end_date"] = c.Query("end_date")
	query.Filters["creditor_doc"] = c.Query("creditor_doc")
	query.Filters["contract_number"] = c.Query("contract_number")

	rows, total, err := h.reportService.PaymentReport(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
	)

	switch c.Query("format") {
	case "", "json":
		c.JSON(http.StatusOK, gin.H{
			"rows":       rows,
			"total":      total,
			"total_paid": services.Totals(rows).String(),
		})
		return
	case "csv":
		data, filename, err = h.exportService.ExportCSV(c.Request.Context(), rows)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(c.Request.Context(), rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.ExportPDF(c.Request.Context(), rows)
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "formato inválido: use csv, xlsx ou pdf"})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
