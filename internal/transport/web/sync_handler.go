package web

import (
	"net/http"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/dto"
)

// PushAll merges the device batch for the caller / Fusionne le lot de l'appareil
//
//	POST /sync/all {"clients":[...],"sales":[...],...}
//	200 {"message":"Sync successful","synced":{"clients":2,...}}
func (h *Handler) PushAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		ErrorResponse(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	limitRequestBody(w, r, h.container.Config.Sync.MaxBodyBytes)

	var batch domain.Batch
	if !decodeJSON(w, r, &batch) {
		return
	}

	counts, err := h.container.SyncSvc.SyncAll(r.Context(), userID, &batch)
	if err != nil {
		writeServiceError(w, r, err, "Failed to synchronize")
		return
	}

	jsonResponse(w, dto.SyncDTOResponse{
		Message: "Sync successful",
		Synced:  counts,
	})
}

// PullAll returns every record of the caller / Retourne tous les enregistrements de l'utilisateur
func (h *Handler) PullAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		ErrorResponse(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	dataset, err := h.container.SyncSvc.FetchAll(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch data")
		return
	}

	jsonResponse(w, dataset)
}
