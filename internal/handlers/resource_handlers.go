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

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

type CreditorHandler struct {
	creditorService *services.CreditorService
}

func NewCreditorHandler(creditorService *services.CreditorService) *CreditorHandler {
	return &CreditorHandler{creditorService: creditorService}
}

// Index lists creditors with pagination and search by name or document.
func (h *CreditorHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	creditors, total, err := h.creditorService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"creditors": creditors, "pagination": gin.H{
		"page": query.Page, "per_page": query.PerPage, "total": total,
	}})
}

func (h *CreditorHandler) Show(c *gin.Context) {
	creditor, err := h.creditorService.FindByDoc(c.Request.Context(), c.Param("doc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creditor": creditor})
}

func (h *CreditorHandler) Create(c *gin.Context) {
	var creditor models.Creditor
	if err := BindNestedOrFlat(c, "creditor", &creditor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.creditorService.Create(c.Request.Context(), &creditor); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"creditor": creditor})
}

type UpdateCreditorRequest struct {
	Name string `json:"name"`
}

// Update corrects a creditor's name. The document key is immutable.
func (h *CreditorHandler) Update(c *gin.Context) {
	var req UpdateCreditorRequest
	if err := BindNestedOrFlat(c, "creditor", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.creditorService.UpdateName(c.Request.Context(), c.Param("doc"), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credor atualizado"})
}

// Delete always refuses. The registry is append-only so that historic
// payments never lose their creditor.
func (h *CreditorHandler) Delete(c *gin.Context) {
	respondError(c, services.ErrDeleteNotAllowed)
}

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	products, total, err := h.catalogService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_services": products, "pagination": gin.H{
		"page": query.Page, "per_page": query.PerPage, "total": total,
	}})
}

func (h *CatalogHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	ps, err := h.catalogService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto ou serviço não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_service": ps})
}

type CreateProductRequest struct {
	Description string `json:"description"`
	UnitValue   string `json:"unit_value"`
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := BindNestedOrFlat(c, "product_service", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value, err := models.ParseCentavos(req.UnitValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ps := models.ProductService{Description: req.Description, UnitValue: value}
	if err := h.catalogService.Create(c.Request.Context(), &ps); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product_service": ps})
}

type UpdateProductRequest struct {
	Description string `json:"description"`
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var req UpdateProductRequest
	if err := BindNestedOrFlat(c, "product_service", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateDescription(c.Request.Context(), uint(id), req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produto ou serviço atualizado"})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	respondError(c, services.ErrDeleteNotAllowed)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	offset := (page - 1) * perPage

	logs, total, err := h.auditService.List(c.Request.Context(), perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": gin.H{"total": total, "page": page, "per_page": perPage}})
}
