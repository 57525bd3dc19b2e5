package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"vistos/internal/doclinks/service"
	httputil "vistos/pkg/http"
	"vistos/pkg/logger"
)

type DoclinkHandler struct {
	service service.DoclinkService
	log     *logger.Logger
}

func NewDoclinkHandler(service service.DoclinkService, log *logger.Logger) *DoclinkHandler {
	return &DoclinkHandler{
		service: service,
		log:     log,
	}
}

type fieldLinksResponse struct {
	EntityType    string   `json:"entityType"`
	FieldPath     string   `json:"fieldPath"`
	DocumentTypes []string `json:"documentTypes"`
}

// FieldLinks is advisory: it always answers 200, with an empty documentTypes
// list when there is no indicator to show.
func (h *DoclinkHandler) FieldLinks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	entityType := query.Get("entity_type")
	fieldPath := query.Get("field")

	names := h.service.FieldLinks(r.Context(), query.Get("process_id"), entityType, fieldPath)
	if names == nil {
		names = []string{}
	}

	response := fieldLinksResponse{
		EntityType:    entityType,
		FieldPath:     fieldPath,
		DocumentTypes: names,
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", "FieldLinks", "error", err)
	}
}

func (h *DoclinkHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/doclinks", h.FieldLinks)
}
