package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Index lists contracts with pagination, search and creditor filter.
func (h *ContractHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["creditor_doc"] = c.Query("creditor_doc")

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts, "pagination": gin.H{
		"page": query.Page, "per_page": query.PerPage, "total": total,
	}})
}

func (h *ContractHandler) Show(c *gin.Context) {
	contract, err := h.contractService.FindByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

// Balance reports committed value, paid sum and remaining balance.
func (h *ContractHandler) Balance(c *gin.Context) {
	balance, err := h.contractService.GetBalance(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

type CreateContractRequest struct {
	Number         string `json:"number"`
	CreditorDoc    string `json:"creditor_doc"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalValue     string `json:"total_value"`
	ContractItemID *uint  `json:"contract_item_id"`
}

func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data de início inválida"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data de término inválida"})
		return
	}
	value, err := models.ParseCentavos(req.TotalValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract := models.Contract{
		Number:         req.Number,
		CreditorDoc:    req.CreditorDoc,
		StartDate:      start,
		EndDate:        end,
		TotalValue:     value,
		ContractItemID: req.ContractItemID,
	}
	if err := h.contractService.Create(c.Request.Context(), &contract); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contract": contract})
}

type CreateAmendmentRequest struct {
	CreditorDoc    string `json:"creditor_doc"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Value          string `json:"value"`
	ContractItemID *uint  `json:"contract_item_id"`
}

// CreateAmendment appends an amendment to the contract in the path.
func (h *ContractHandler) CreateAmendment(c *gin.Context) {
	var req CreateAmendmentRequest
	if err := BindNestedOrFlat(c, "amendment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amendment := models.Amendment{
		ContractNumber: c.Param("number"),
		CreditorDoc:    req.CreditorDoc,
		ContractItemID: req.ContractItemID,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "data de início inválida"})
			return
		}
		amendment.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "data de término inválida"})
			return
		}
		amendment.EndDate = &end
	}
	if req.Value != "" {
		value, err := models.ParseCentavos(req.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		amendment.Value = value
	}

	if err := h.contractService.AddAmendment(c.Request.Context(), &amendment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"amendment": amendment})
}

func (h *ContractHandler) Delete(c *gin.Context) {
	respondError(c, services.ErrDeleteNotAllowed)
}
