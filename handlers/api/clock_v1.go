package api

import (
	"net/http"
	"time"
)

// APIClockResponse represents the response structure for the chain clock
type APIClockResponse struct {
	Status string        `json:"status"`
	Data   *APIClockData `json:"data"`
}

// APIClockData contains the current clock reading
type APIClockData struct {
	Network       string `json:"network"`
	Slot          uint64 `json:"slot"`
	Epoch         uint64 `json:"epoch"`
	SlotInEpoch   uint64 `json:"slot_in_epoch"`
	SlotStartTime int64  `json:"slot_start_time"`
	MsIntoSlot    int64  `json:"ms_into_slot"`
	Fork          string `json:"fork"`
}

// ClockV1 returns the current slot, epoch and active fork of the tracked network
func (h *Handler) ClockV1(w http.ResponseWriter, r *http.Request) {
	schedule := h.chainState.Schedule()
	reading := schedule.Reading(time.Now())

	response := APIClockResponse{
		Status: "OK",
		Data: &APIClockData{
			Network:       schedule.Name(),
			Slot:          uint64(reading.Slot),
			Epoch:         uint64(reading.Epoch),
			SlotInEpoch:   reading.SlotInEpoch,
			SlotStartTime: reading.SlotStartTime.Unix(),
			MsIntoSlot:    reading.MsIntoSlot,
			Fork:          schedule.ForkAt(reading.Epoch).Name,
		},
	}

	h.writeJSON(w, response)
}
