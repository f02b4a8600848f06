package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/lab/chain"
	"github.com/ethpandaops/lab/player"
)

// Handler serves the clock and playback status api.
type Handler struct {
	chainState *chain.State
	player     *player.Player
	logger     logrus.FieldLogger
}

func NewHandler(chainState *chain.State, slotPlayer *player.Player, logger logrus.FieldLogger) *Handler {
	return &Handler{
		chainState: chainState,
		player:     slotPlayer,
		logger:     logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, response any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode api response")
		http.Error(w, `{"status": "ERROR: failed to encode response"}`, http.StatusInternalServerError)
	}
}
