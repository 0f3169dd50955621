package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/handler"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	"github.com/aniketdange3/dental-clinic-api/internal/service/patient"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
	"github.com/aniketdange3/dental-clinic-api/pkg/httputil"
)

type Handler struct {
	service    patient.PatientService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service patient.PatientService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:    service,
		outboxRepo: outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), req.Patient())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventPatientCreate, created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Patient added successfully",
		"patient": created,
	})
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("patient"))
		return
	}

	found, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("patient"))
		return
	}

	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation(err.Error()))
		return
	}

	updated := req.Patient()
	updated.ID = id

	updated, err = h.service.UpdatePatient(c.Request.Context(), updated)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventPatientUpdate, updated)

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient updated successfully",
		"patient": updated,
	})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidID("patient"))
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	handler.EnqueueEvent(c.Request.Context(), h.outboxRepo, model.EventPatientDelete, gin.H{"id": id})

	httputil.RespondWithMessage(c, http.StatusOK, "Patient deleted successfully")
}
