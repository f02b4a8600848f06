package api

import (
	"net/http"
)

// APINetworkForksResponse represents the response structure for network forks
type APINetworkForksResponse struct {
	Status string               `json:"status"`
	Data   *APINetworkForksData `json:"data"`
}

// APINetworkForksData contains the network forks data
type APINetworkForksData struct {
	ConfigName   string                `json:"config_name"`
	CurrentEpoch uint64                `json:"current_epoch"`
	Forks        []*APINetworkForkInfo `json:"forks"`
	Count        uint64                `json:"count"`
}

// APINetworkForkInfo represents information about a single network fork
type APINetworkForkInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Epoch   uint64 `json:"epoch"`
	Active  bool   `json:"active"`
	Time    int64  `json:"time"`
}

// NetworkForksV1 returns the scheduled forks of the tracked network
func (h *Handler) NetworkForksV1(w http.ResponseWriter, r *http.Request) {
	schedule := h.chainState.Schedule()
	currentEpoch := h.chainState.CurrentEpoch()

	forks := []*APINetworkForkInfo{}
	for _, fork := range schedule.Forks() {
		forks = append(forks, &APINetworkForkInfo{
			Name:    fork.Name,
			Version: fork.Version,
			Epoch:   uint64(fork.Epoch),
			Active:  fork.Epoch <= currentEpoch,
			Time:    schedule.SlotStartTime(schedule.EpochStartSlot(fork.Epoch)).Unix(),
		})
	}

	response := APINetworkForksResponse{
		Status: "OK",
		Data: &APINetworkForksData{
			ConfigName:   schedule.Name(),
			CurrentEpoch: uint64(currentEpoch),
			Forks:        forks,
			Count:        uint64(len(forks)),
		},
	}

	h.writeJSON(w, response)
}
