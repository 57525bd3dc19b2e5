package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/cbocodes/service"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type CboCodeHandler struct {
	service service.CboCodeService
	log     *logger.Logger
}

func NewCboCodeHandler(service service.CboCodeService, log *logger.Logger) *CboCodeHandler {
	return &CboCodeHandler{
		service: service,
		log:     log,
	}
}

func (h *CboCodeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cbo model.CboCode
	if err := json.NewDecoder(r.Body).Decode(&cbo); err != nil {
		h.writeJSON(w, "Create", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &cbo); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, cbo); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CboCodeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cbo, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, cbo); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *CboCodeHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	cbos, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, cbos, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *CboCodeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var cbo model.CboCode
	if err := json.NewDecoder(r.Body).Decode(&cbo); err != nil {
		h.writeJSON(w, "Update", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &cbo); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CboCodeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

// Search looks up by exact code when ?code= is given, otherwise by title
// prefix.
func (h *CboCodeHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	if code := query.Get("code"); code != "" {
		cbo, err := h.service.GetByCode(r.Context(), code)
		if err != nil {
			h.writeError(w, "Search", err)
			return
		}
		if err := httputil.WriteSuccess(w, cbo); err != nil {
			h.log.Error("failed to write success response", "handler", "Search", "error", err)
		}
		return
	}

	limit := 0
	if s := query.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	cbos, err := h.service.SearchByTitle(r.Context(), query.Get("title"), limit)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, cbos); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

func (h *CboCodeHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/cbo-codes", h.Create)
	router.GET("/api/v1/cbo-codes", h.GetAll)
	router.GET("/api/v1/cbo-codes/search", h.Search)
	router.GET("/api/v1/cbo-codes/:id", h.GetByID)
	router.PUT("/api/v1/cbo-codes/:id", h.Update)
	router.DELETE("/api/v1/cbo-codes/:id", h.Delete)
}

func (h *CboCodeHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *CboCodeHandler) writeJSON(w http.ResponseWriter, handlerName string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
