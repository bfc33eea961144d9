package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

// UploadHandler hands out presigned object-storage URLs for note images.
// Premium only; the capability check reads the role claim directly rather
// than asking the session service.
type UploadHandler struct {
	attachments *services.AttachmentService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(attachments *services.AttachmentService) *UploadHandler {
	return &UploadHandler{attachments: attachments}
}

type uploadPayload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// CreateUploadURL returns a storage key and a presigned PUT URL. The client
// uploads directly to object storage and stores the resulting key on the note.
func (h *UploadHandler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if models.Role(caller.Role) != models.RolePremium {
		writeFailure(w, http.StatusForbidden, "premium required")
		return
	}

	key, url, err := h.attachments.GetPresignedPutURL(r.Context())
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, uploadPayload{Key: key, UploadURL: url})
}

type downloadPayload struct {
	DownloadURL string `json:"downloadUrl"`
}

// GetDownloadURL returns a presigned GET URL for a previously uploaded key.
func (h *UploadHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeFailure(w, http.StatusBadRequest, "key required")
		return
	}

	url, err := h.attachments.GetPresignedGetURL(r.Context(), key)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, downloadPayload{DownloadURL: url})
}
