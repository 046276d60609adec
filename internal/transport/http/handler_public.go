package httptransport

import (
	"errors"
	"net/http"

	apppublic "chess-relay/internal/app/public"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type PublicHandlers struct {
	publicSvc *apppublic.Service
}

func NewPublicHandlers(publicSvc *apppublic.Service) *PublicHandlers {
	return &PublicHandlers{publicSvc: publicSvc}
}

func (h *PublicHandlers) GameMoves() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricMovesQueryTotal.Add(1)
		afterPly, ok := queryInt(r, "after_ply", 0)
		if !ok {
			metricMovesQueryErrors.Add(1)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		limit, ok := queryInt(r, "limit", 0)
		if !ok {
			metricMovesQueryErrors.Add(1)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		resp, err := h.publicSvc.GameMoves(r.Context(), chi.URLParam(r, "game_id"), afterPly, limit)
		if err != nil {
			metricMovesQueryErrors.Add(1)
			switch {
			case errors.Is(err, apppublic.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, apppublic.ErrGameNotFound):
				WriteHTTPError(w, http.StatusNotFound, "game_not_found")
			case errors.Is(err, apppublic.ErrJournalDisabled):
				WriteHTTPError(w, http.StatusNotFound, "journal_disabled")
			default:
				log.Error().Err(err).Msg("list moves failed")
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, resp)
	}
}
