package expense

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/handler"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	"github.com/aniketdange3/dental-clinic-api/internal/service/expense"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
	"github.com/aniketdange3/dental-clinic-api/pkg/httputil"
)

type Handler struct {
	service    expense.ExpenseService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service expense.ExpenseService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:    service,
		outboxRepo: outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	expenses := r.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func (h *Handler) ListExpenses(c *gin.Context) {
	expenses, err := h.service.ListExpenses(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var req model.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.CreateExpense(c.Request.Context(), req.Expense(time.Now()))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventExpenseCreate, created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense added successfully",
		"expense": created,
	})
}

func (h *Handler) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("expense"))
		return
	}

	found, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("expense"))
		return
	}

	var req model.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	updated := req.Expense(time.Now())
	updated.ID = id

	updated, err = h.service.UpdateExpense(c.Request.Context(), updated)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventExpenseUpdate, updated)

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense updated successfully",
		"expense": updated,
	})
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("expense"))
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventExpenseDelete, gin.H{"id": id})

	httputil.RespondWithMessage(c, http.StatusOK, "Expense deleted successfully")
}
