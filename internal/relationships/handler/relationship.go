package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/relationships/service"
	apperrors "vistos/pkg/errors"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type RelationshipHandler struct {
	service service.RelationshipService
	log     *logger.Logger
}

func NewRelationshipHandler(service service.RelationshipService, log *logger.Logger) *RelationshipHandler {
	return &RelationshipHandler{
		service: service,
		log:     log,
	}
}

func (h *RelationshipHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rel model.PersonCompanyRelationship
	if err := json.NewDecoder(r.Body).Decode(&rel); err != nil {
		h.writeJSON(w, "Create", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &rel); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, rel); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *RelationshipHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rel, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, rel); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *RelationshipHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	rels, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, rels, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *RelationshipHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var rel model.PersonCompanyRelationship
	if err := json.NewDecoder(r.Body).Decode(&rel); err != nil {
		h.writeJSON(w, "Update", http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &rel); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RelationshipHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

// Search filters by ?person_id= or ?company_id=; exactly one must be given.
func (h *RelationshipHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	personID := query.Get("person_id")
	companyID := query.Get("company_id")

	limit := 0
	if s := query.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	var (
		rels []*model.PersonCompanyRelationship
		err  error
	)
	switch {
	case personID != "" && companyID != "":
		err = apperrors.InvalidInput("Provide either person_id or company_id, not both")
	case personID != "":
		rels, err = h.service.GetByPerson(r.Context(), personID, limit)
	case companyID != "":
		rels, err = h.service.GetByCompany(r.Context(), companyID, limit)
	default:
		err = apperrors.InvalidInput("Either person_id or company_id is required")
	}
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, rels); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

func (h *RelationshipHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/relationships", h.Create)
	router.GET("/api/v1/relationships", h.GetAll)
	router.GET("/api/v1/relationships/search", h.Search)
	router.GET("/api/v1/relationships/:id", h.GetByID)
	router.PUT("/api/v1/relationships/:id", h.Update)
	router.DELETE("/api/v1/relationships/:id", h.Delete)
}

func (h *RelationshipHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *RelationshipHandler) writeJSON(w http.ResponseWriter, handlerName string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
