package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
	"github.com/rvmoura/pagamentos-api/internal/storage"
)

type ImportHandler struct {
	importService *services.ImportService
	reconcile     *services.ReconcileService
	store         *storage.LocalStorage
	maxBytes      int64
}

func NewImportHandler(importService *services.ImportService, reconcile *services.ReconcileService, store *storage.LocalStorage, maxBytes int64) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		reconcile:     reconcile,
		store:         store,
		maxBytes:      maxBytes,
	}
}

// Kinds lists the entity kinds the reconciler accepts, one per legacy table.
func (h *ImportHandler) Kinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": h.reconcile.Kinds()})
}

// Create receives a multipart batch of CSV files, one form field per entity
// kind, archives the raw uploads and queues the batch for reconciliation.
// Returns 202 with the batch GUID to poll.
func (h *ImportHandler) Create(c *gin.Context) {
	if h.maxBytes > 0 && c.Request.ContentLength > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Arquivo demasiado grande"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulário multipart inválido"})
		return
	}

	known := make(map[string]bool)
	for _, kind := range h.reconcile.Kinds() {
		known[kind] = true
	}

	guid := services.NewBatchGUID()
	var files []services.BatchFile
	for field, headers := range form.File {
		if !known[field] {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Tabela desconhecida: " + field})
			return
		}
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao ler arquivo " + header.Filename})
				return
			}
			path, err := h.store.SaveUpload(f, guid, field+".csv")
			f.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar arquivo"})
				return
			}
			files = append(files, services.BatchFile{Kind: field, Path: path})
		}
	}

	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado"})
		return
	}

	batch, err := h.importService.StartBatch(c.Request.Context(), guid, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"batch": batch})
}

// Index lists batches, newest first, optionally filtered by status.
func (h *ImportHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")

	batches, total, err := h.importService.ListBatches(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches, "pagination": gin.H{
		"page": query.Page, "per_page": query.PerPage, "total": total,
	}})
}

// Show returns batch status and per-file results for polling clients.
func (h *ImportHandler) Show(c *gin.Context) {
	batch, results, err := h.importService.GetBatch(c.Request.Context(), c.Param("guid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lote não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch, "results": results})
}
