package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TagHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type tagHandlerImpl struct {
	tagRepo tag.TagRepository
}

func NewTagHandler(repo tag.TagRepository) TagHandler {
	return &tagHandlerImpl{
		tagRepo: repo,
	}
}

// Create implements TagHandler. The opaque token is generated server
// side and written to the physical tag afterwards.
func (h *tagHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req tag.CreateTagRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create tag decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.tagRepo.Create(r.Context(), tag.Tag{
		OrgID: claims.OrgID,
		Token: uuid.NewString(),
		Label: req.Label,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tag registered successfully", tag.ToResponse(created))
}

// List implements TagHandler.
func (h *tagHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	tags, err := h.tagRepo.ListByOrg(r.Context(), claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]tag.TagResponse, 0, len(tags))
	for _, t := range tags {
		results = append(results, tag.ToResponse(t))
	}
	response.Success(w, results)
}

// Deactivate implements TagHandler.
func (h *tagHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.tagRepo.Deactivate(r.Context(), id, claims.OrgID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tag deactivated", nil)
}
