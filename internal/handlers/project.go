package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/httpx"
	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
	"github.com/vjayanthr/freelance-tracker-hub/validation"
)

type ProjectHandler struct{ DB *gorm.DB }

func NewProjectHandler(db *gorm.DB) *ProjectHandler { return &ProjectHandler{DB: db} }

type projectReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ClientID    string  `json:"client_id"`
	PricingType string  `json:"pricing_type"`
	Rate        float64 `json:"rate"`
	MonthlyRate float64 `json:"monthly_rate"`
	FixedRate   float64 `json:"fixed_rate"`
	Status      string  `json:"status"`
}

// validate checks the request before any store call. Exactly the rate field
// matching the pricing type must be positive.
func (req *projectReq) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("client_id", req.ClientID, v)
	if req.PricingType == "" {
		req.PricingType = models.PricingHourly
	}
	if !models.ValidPricingType(req.PricingType) {
		v["pricing_type"] = "invalid_value"
		return v
	}
	switch req.PricingType {
	case models.PricingHourly:
		validation.PositiveFloat("rate", req.Rate, v)
	case models.PricingMonthly:
		validation.PositiveFloat("monthly_rate", req.MonthlyRate, v)
	case models.PricingFixed:
		validation.PositiveFloat("fixed_rate", req.FixedRate, v)
	}
	if req.Status != "" && !models.ValidProjectStatus(req.Status) {
		v["status"] = "invalid_value"
	}
	return v
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var projects []models.Project
	if err := h.DB.WithContext(r.Context()).Preload("Client").
		Where("user_id = ?", uid).Order("created_at desc").Find(&projects).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_projects", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": projects, "total": len(projects)})
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var client models.Client
	if err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", req.ClientID, uid).First(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "client_not_found", nil)
		return
	}
	project := models.Project{
		UserID:      uid,
		ClientID:    client.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		PricingType: req.PricingType,
		Rate:        req.Rate,
		MonthlyRate: req.MonthlyRate,
		FixedRate:   req.FixedRate,
		Status:      req.Status,
	}
	if err := h.DB.WithContext(r.Context()).Create(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_project", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var project models.Project
	if err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, uid).First(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ClientID == "" {
		req.ClientID = project.ClientID
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	project.Name = strings.TrimSpace(req.Name)
	project.Description = strings.TrimSpace(req.Description)
	project.PricingType = req.PricingType
	project.Rate = req.Rate
	project.MonthlyRate = req.MonthlyRate
	project.FixedRate = req.FixedRate
	if req.Status != "" {
		project.Status = req.Status
	}
	if err := h.DB.WithContext(r.Context()).Save(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_project", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var project models.Project
	if err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, uid).First(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	var entries int64
	if err := h.DB.WithContext(r.Context()).Model(&models.TimeEntry{}).
		Where("project_id = ?", project.ID).Count(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_project", nil)
		return
	}
	if entries > 0 {
		httpx.JSONError(w, http.StatusConflict, "project_has_time_entries", nil)
		return
	}
	if err := h.DB.WithContext(r.Context()).Delete(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_project", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Financials: GET /projects/financials?id= – the four rollups for one project,
// recomputed from its entries on every call.
func (h *ProjectHandler) Financials(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var project models.Project
	if err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, uid).First(&project).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	var entries []models.TimeEntry
	if err := h.DB.WithContext(r.Context()).Preload("Project").Preload("Invoice").
		Where("project_id = ? AND user_id = ?", project.ID, uid).Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_entries", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, services.ComputeFinancials(entries))
}
