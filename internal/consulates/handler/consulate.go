package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/consulates/service"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type ConsulateHandler struct {
	service service.ConsulateService
	log     *logger.Logger
}

func NewConsulateHandler(service service.ConsulateService, log *logger.Logger) *ConsulateHandler {
	return &ConsulateHandler{
		service: service,
		log:     log,
	}
}

func (h *ConsulateHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var consulate model.Consulate
	if err := json.NewDecoder(r.Body).Decode(&consulate); err != nil {
		h.writeJSON(w, "Create", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &consulate); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, consulate); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ConsulateHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	consulate, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, consulate); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *ConsulateHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	consulates, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, consulates, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *ConsulateHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var consulate model.Consulate
	if err := json.NewDecoder(r.Body).Decode(&consulate); err != nil {
		h.writeJSON(w, "Update", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &consulate); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ConsulateHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ConsulateHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	country := query.Get("country")

	limit := 0
	if s := query.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	consulates, err := h.service.GetByCountry(r.Context(), country, limit)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, consulates); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

func (h *ConsulateHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/consulates", h.Create)
	router.GET("/api/v1/consulates", h.GetAll)
	router.GET("/api/v1/consulates/search", h.Search)
	router.GET("/api/v1/consulates/:id", h.GetByID)
	router.PUT("/api/v1/consulates/:id", h.Update)
	router.DELETE("/api/v1/consulates/:id", h.Delete)
}

func (h *ConsulateHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ConsulateHandler) writeJSON(w http.ResponseWriter, handlerName string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
