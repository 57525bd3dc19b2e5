package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/cities/service"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type CityHandler struct {
	service service.CityService
	log     *logger.Logger
}

func NewCityHandler(service service.CityService, log *logger.Logger) *CityHandler {
	return &CityHandler{
		service: service,
		log:     log,
	}
}

func (h *CityHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var city model.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		h.writeJSON(w, "Create", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &city); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, city); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CityHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	city, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, city); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *CityHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	cities, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, cities, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *CityHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var city model.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		h.writeJSON(w, "Update", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &city); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CityHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	prefix := query.Get("name")

	limit := 0
	if s := query.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	cities, err := h.service.SearchByName(r.Context(), prefix, limit)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, cities); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

func (h *CityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/cities", h.Create)
	router.GET("/api/v1/cities", h.GetAll)
	router.GET("/api/v1/cities/search", h.Search)
	router.GET("/api/v1/cities/:id", h.GetByID)
	router.PUT("/api/v1/cities/:id", h.Update)
	router.DELETE("/api/v1/cities/:id", h.Delete)
}

func (h *CityHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *CityHandler) writeJSON(w http.ResponseWriter, handlerName string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
