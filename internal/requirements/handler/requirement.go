package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/requirements/service"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type RequirementHandler struct {
	service service.RequirementService
	log     *logger.Logger
}

func NewRequirementHandler(service service.RequirementService, log *logger.Logger) *RequirementHandler {
	return &RequirementHandler{
		service: service,
		log:     log,
	}
}

func (h *RequirementHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LegalFrameworkInfoRequirement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, "Create", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, req); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *RequirementHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, req); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *RequirementHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	reqs, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, reqs, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *RequirementHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.LegalFrameworkInfoRequirement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, "Update", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &req); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RequirementHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RequirementHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	reqs, err := h.service.GetByLegalFramework(r.Context(), query.Get("legal_framework_id"), limit)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, reqs); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

func (h *RequirementHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/requirements", h.Create)
	router.GET("/api/v1/requirements", h.GetAll)
	router.GET("/api/v1/requirements/search", h.Search)
	router.GET("/api/v1/requirements/:id", h.GetByID)
	router.PUT("/api/v1/requirements/:id", h.Update)
	router.DELETE("/api/v1/requirements/:id", h.Delete)
}

func (h *RequirementHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *RequirementHandler) writeJSON(w http.ResponseWriter, handlerName string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
