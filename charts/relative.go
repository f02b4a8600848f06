// Package charts provides the epoch-relative time mapping used by chart axes
// and tooltips, converting absolute slot numbers into 1-based positions within
// a reference epoch.
package charts

import (
	"strconv"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"

	"github.com/ethpandaops/lab/chain"
)

// RelativeSlot returns the 1-based display position of an absolute slot within
// the reference epoch. Callers are expected to pass slots of the reference
// epoch only, out of range results signal a caller mistake and are returned
// as-is.
func RelativeSlot(slot phase0.Slot, referenceEpoch phase0.Epoch, schedule *chain.Schedule) int64 {
	return int64(slot) - int64(referenceEpoch)*int64(schedule.SlotsPerEpoch()) + 1
}

// AxisLabel renders the relative position for an axis tick. The absolute slot
// is carried separately via Tooltip.
func AxisLabel(slot phase0.Slot, referenceEpoch phase0.Epoch, schedule *chain.Schedule) string {
	return strconv.FormatInt(RelativeSlot(slot, referenceEpoch, schedule), 10)
}

// TooltipData carries both the relative and absolute values of a chart point.
type TooltipData struct {
	AbsoluteSlot  phase0.Slot
	Epoch         phase0.Epoch
	SlotInEpoch   uint64
	SlotStartTime time.Time
	Fork          string
}

// Tooltip builds the tooltip payload for an absolute slot.
func Tooltip(slot phase0.Slot, schedule *chain.Schedule) TooltipData {
	epoch := schedule.EpochAt(slot)

	return TooltipData{
		AbsoluteSlot:  slot,
		Epoch:         epoch,
		SlotInEpoch:   schedule.SlotInEpoch(slot),
		SlotStartTime: schedule.SlotStartTime(slot),
		Fork:          schedule.ForkAt(epoch).Name,
	}
}
