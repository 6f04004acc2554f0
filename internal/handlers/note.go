package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

type NoteHandler struct{ DB *gorm.DB }

func NewNoteHandler(db *gorm.DB) *NoteHandler { return &NoteHandler{DB: db} }

// List: GET /notes?projectId= (required)
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryID(r, "projectId")
	if !ok || projectID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "project_id_required", nil)
		return
	}
	var notes []models.Note
	if err := h.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&notes).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, notes)
}

type createNoteRequest struct {
	ProjectID uint   `json:"projectId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
}

// Create: POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("projectId", req.ProjectID, v)
	validation.Required("content", req.Content, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.DB.First(&models.Project{}, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeServiceError(w, services.ErrProjectNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}
	color := req.Color
	if color == "" {
		color = "#ffffff"
	}
	note := models.Note{ProjectID: req.ProjectID, Title: req.Title, Content: req.Content, Color: color}
	if err := h.DB.Create(&note).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, note)
}
