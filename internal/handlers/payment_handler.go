package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Index lists payments with period, date-range and creditor filters.
func (h *PaymentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["period"] = c.Query("period")
	query.Filters["start_date"] = c.Query("start_date")
	query.Filters["end_date"] = c.Query("end_date")
	query.Filters["creditor_doc"] = c.Query("creditor_doc")
	query.Filters["contract_number"] = c.Query("contract_number")

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

func (h *PaymentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	payment, err := h.paymentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment.ToResponse()})
}

// DocumentRequest is the optional supporting document in a payment request.
type DocumentRequest struct {
	Kind   string `json:"kind"`
	Number string `json:"number"`
	Date   string `json:"date"`
}

type CreatePaymentRequest struct {
	Date             string           `json:"date"`
	Period           string           `json:"period"`
	Value            string           `json:"value"`
	CreditorDoc      string           `json:"creditor_doc"`
	ContractNumber   *string          `json:"contract_number"`
	ProductServiceID *uint            `json:"product_service_id"`
	Quantity         *int             `json:"quantity"`
	Group            *int             `json:"group"`
	Document         *DocumentRequest `json:"document"`
}

// Create records a payment. All integrity rules run before anything is
// persisted; failures come back with the violated rule's message.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data do pagamento inválida"})
		return
	}
	value, err := models.ParseCentavos(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := services.PaymentDraft{
		Date:             date,
		Period:           req.Period,
		Value:            value,
		CreditorDoc:      req.CreditorDoc,
		ContractNumber:   req.ContractNumber,
		ProductServiceID: req.ProductServiceID,
		Quantity:         req.Quantity,
		Group:            req.Group,
	}

	if req.Document != nil {
		draft.DocumentKind = models.DocumentKind(req.Document.Kind)
		draft.DocumentNumber = req.Document.Number
		if req.Document.Date != "" {
			docDate, err := time.Parse("2006-01-02", req.Document.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "data do documento inválida"})
				return
			}
			draft.DocumentDate = &docDate
		}
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment.ToResponse(), "message": "Pagamento registrado"})
}

// IndexByContract lists payments of the contract in the path.
func (h *PaymentHandler) IndexByContract(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["contract_number"] = c.Param("number")

	payments, _, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"payments": responses})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	respondError(c, services.ErrDeleteNotAllowed)
}
