package api

import (
	"net/http"
	"strconv"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/gorilla/mux"

	"github.com/ethpandaops/lab/player"
)

// APIPlaybackResponse represents the response structure for the playback state
type APIPlaybackResponse struct {
	Status string           `json:"status"`
	Data   *APIPlaybackData `json:"data"`
}

// APIPlaybackData contains the slot playback state
type APIPlaybackData struct {
	CurrentSlot    uint64  `json:"current_slot"`
	SlotProgressMs int64   `json:"slot_progress_ms"`
	IsPlaying      bool    `json:"is_playing"`
	Mode           string  `json:"mode"`
	PlaybackSpeed  float64 `json:"playback_speed"`
	MinSlot        uint64  `json:"min_slot"`
	MaxSlot        uint64  `json:"max_slot"`
}

// PlaybackV1 returns the current slot playback state
func (h *Handler) PlaybackV1(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.playbackResponse())
}

// PlaybackControlV1 applies a playback control action (play, pause, toggle,
// next, previous, goto, rewind, fastforward, speed, mode) and returns the
// resulting playback state. Out of range slots are clamped, invalid speed
// values are ignored.
func (h *Handler) PlaybackControlV1(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	switch vars["action"] {
	case "play":
		h.player.Play()
	case "pause":
		h.player.Pause()
	case "toggle":
		h.player.Toggle()
	case "next":
		h.player.NextSlot()
	case "previous":
		h.player.PreviousSlot()
	case "rewind":
		h.player.Rewind()
	case "fastforward":
		h.player.FastForward()
	case "goto":
		slot, err := strconv.ParseUint(r.URL.Query().Get("slot"), 10, 64)
		if err != nil {
			http.Error(w, `{"status": "ERROR: invalid slot parameter"}`, http.StatusBadRequest)
			return
		}

		h.player.GoToSlot(phase0.Slot(slot))
	case "speed":
		speed, err := strconv.ParseFloat(r.URL.Query().Get("speed"), 64)
		if err != nil {
			http.Error(w, `{"status": "ERROR: invalid speed parameter"}`, http.StatusBadRequest)
			return
		}

		h.player.SetPlaybackSpeed(speed)
	case "mode":
		switch r.URL.Query().Get("mode") {
		case "continuous":
			h.player.SetMode(player.ModeContinuous)
		case "single":
			h.player.SetMode(player.ModeSingle)
		default:
			http.Error(w, `{"status": "ERROR: invalid mode parameter"}`, http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, `{"status": "ERROR: unknown playback action"}`, http.StatusNotFound)
		return
	}

	h.writeJSON(w, h.playbackResponse())
}

func (h *Handler) playbackResponse() APIPlaybackResponse {
	state := h.player.State()

	return APIPlaybackResponse{
		Status: "OK",
		Data: &APIPlaybackData{
			CurrentSlot:    uint64(state.CurrentSlot),
			SlotProgressMs: state.SlotProgress.Milliseconds(),
			IsPlaying:      state.IsPlaying,
			Mode:           state.Mode.String(),
			PlaybackSpeed:  state.PlaybackSpeed,
			MinSlot:        uint64(state.MinSlot),
			MaxSlot:        uint64(state.MaxSlot),
		},
	}
}
