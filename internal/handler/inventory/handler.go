package inventory

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/handler"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	"github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
	"github.com/aniketdange3/dental-clinic-api/pkg/httputil"
)

type Handler struct {
	service    inventory.InventoryService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service inventory.InventoryService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:    service,
		outboxRepo: outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/inventory")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.CreateItem(c.Request.Context(), req.Item(time.Now()))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventInventoryCreate, created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inventory item added successfully",
		"item":    created,
	})
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("inventory item"))
		return
	}

	found, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("inventory item"))
		return
	}

	var req model.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	updated := req.Item(time.Now())
	updated.ID = id

	updated, err = h.service.UpdateItem(c.Request.Context(), updated)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventInventoryUpdate, updated)

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item updated successfully",
		"item":    updated,
	})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("inventory item"))
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventInventoryDelete, gin.H{"id": id})

	httputil.RespondWithMessage(c, http.StatusOK, "Inventory item deleted successfully")
}
