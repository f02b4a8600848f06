package chain

import (
	"fmt"
	"sort"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"

	"github.com/ethpandaops/lab/types"
)

// ForkScheduleEntry is a single scheduled fork activation.
type ForkScheduleEntry struct {
	Name    string
	Epoch   phase0.Epoch
	Version string
}

// Schedule is the validated, immutable timing view of a chain config.
// All clock conversions are pure integer math on top of it.
type Schedule struct {
	name           string
	genesisTime    time.Time
	secondsPerSlot time.Duration
	slotsPerEpoch  uint64
	forks          []ForkScheduleEntry
}

// NewSchedule validates the chain config once and builds the fork table.
// Unscheduled forks (nil or far future epoch) are excluded from the table.
func NewSchedule(genesisTimestamp uint64, cfg *types.ChainConfig) (*Schedule, error) {
	if genesisTimestamp == 0 {
		return nil, fmt.Errorf("missing genesis timestamp")
	}

	if cfg.SecondsPerSlot == 0 {
		return nil, fmt.Errorf("invalid chain config: SECONDS_PER_SLOT is 0")
	}

	if cfg.SlotsPerEpoch == 0 {
		return nil, fmt.Errorf("invalid chain config: SLOTS_PER_EPOCH is 0")
	}

	forks := []ForkScheduleEntry{
		{Name: "phase0", Epoch: 0, Version: cfg.GenesisForkVersion},
	}

	addFork := func(name string, epoch *uint64, version string) {
		if epoch == nil || *epoch >= types.FarFutureEpoch {
			return
		}

		forks = append(forks, ForkScheduleEntry{
			Name:    name,
			Epoch:   phase0.Epoch(*epoch),
			Version: version,
		})
	}

	addFork("altair", cfg.AltairForkEpoch, cfg.AltairForkVersion)
	addFork("bellatrix", cfg.BellatrixForkEpoch, cfg.BellatrixForkVersion)
	addFork("capella", cfg.CapellaForkEpoch, cfg.CapellaForkVersion)
	addFork("deneb", cfg.DenebForkEpoch, cfg.DenebForkVersion)
	addFork("electra", cfg.ElectraForkEpoch, cfg.ElectraForkVersion)
	addFork("fulu", cfg.FuluForkEpoch, cfg.FuluForkVersion)

	sort.SliceStable(forks, func(a, b int) bool {
		return forks[a].Epoch < forks[b].Epoch
	})

	return &Schedule{
		name:           cfg.ConfigName,
		genesisTime:    time.Unix(int64(genesisTimestamp), 0),
		secondsPerSlot: time.Duration(cfg.SecondsPerSlot) * time.Second,
		slotsPerEpoch:  cfg.SlotsPerEpoch,
		forks:          forks,
	}, nil
}

func (s *Schedule) Name() string {
	return s.name
}

func (s *Schedule) GenesisTime() time.Time {
	return s.genesisTime
}

func (s *Schedule) SlotDuration() time.Duration {
	return s.secondsPerSlot
}

func (s *Schedule) SlotsPerEpoch() uint64 {
	return s.slotsPerEpoch
}

func (s *Schedule) EpochDuration() time.Duration {
	return s.secondsPerSlot * time.Duration(s.slotsPerEpoch)
}

// Forks returns the scheduled forks sorted ascending by activation epoch.
func (s *Schedule) Forks() []ForkScheduleEntry {
	forks := make([]ForkScheduleEntry, len(s.forks))
	copy(forks, s.forks)

	return forks
}

// SlotAt returns the slot number at the given time.
// The result is negative for pre-genesis times, callers decide whether to clamp.
func (s *Schedule) SlotAt(t time.Time) int64 {
	seconds := t.Unix() - s.genesisTime.Unix()
	slotSeconds := int64(s.secondsPerSlot / time.Second)

	slot := seconds / slotSeconds
	if seconds < 0 && seconds%slotSeconds != 0 {
		slot--
	}

	return slot
}

// SlotStartTime returns the time at which the given slot begins.
func (s *Schedule) SlotStartTime(slot phase0.Slot) time.Time {
	return s.genesisTime.Add(time.Duration(slot) * s.secondsPerSlot)
}

// EpochAt returns the epoch the given slot belongs to.
func (s *Schedule) EpochAt(slot phase0.Slot) phase0.Epoch {
	return phase0.Epoch(slot / phase0.Slot(s.slotsPerEpoch))
}

// EpochStartSlot returns the first slot of the given epoch.
func (s *Schedule) EpochStartSlot(epoch phase0.Epoch) phase0.Slot {
	return phase0.Slot(epoch) * phase0.Slot(s.slotsPerEpoch)
}

// SlotInEpoch returns the 1-based position of the slot within its epoch.
func (s *Schedule) SlotInEpoch(slot phase0.Slot) uint64 {
	return uint64(slot)%s.slotsPerEpoch + 1
}

// ForkAt returns the fork active at the given epoch, ie. the scheduled fork
// with the highest activation epoch <= epoch. If no fork qualifies, the
// earliest defined fork is returned.
func (s *Schedule) ForkAt(epoch phase0.Epoch) ForkScheduleEntry {
	for i := len(s.forks) - 1; i >= 0; i-- {
		if s.forks[i].Epoch <= epoch {
			return s.forks[i]
		}
	}

	return s.forks[0]
}

// IsEpochAtOrAfter reports whether epoch has reached the target activation epoch.
// An unscheduled target (nil) never counts as reached.
func IsEpochAtOrAfter(epoch phase0.Epoch, target *uint64) bool {
	if target == nil || *target >= types.FarFutureEpoch {
		return false
	}

	return uint64(epoch) >= *target
}

// ClockReading is a derived snapshot of the chain clock at a point in time.
type ClockReading struct {
	Slot          phase0.Slot
	Epoch         phase0.Epoch
	SlotInEpoch   uint64
	SlotStartTime time.Time
	MsIntoSlot    int64
}

// Reading computes the clock reading at the given time.
// Pre-genesis times are clamped to slot 0.
func (s *Schedule) Reading(t time.Time) ClockReading {
	slot := s.SlotAt(t)
	if slot < 0 {
		return ClockReading{
			Slot:          0,
			Epoch:         0,
			SlotInEpoch:   1,
			SlotStartTime: s.genesisTime,
			MsIntoSlot:    0,
		}
	}

	startTime := s.SlotStartTime(phase0.Slot(slot))

	return ClockReading{
		Slot:          phase0.Slot(slot),
		Epoch:         s.EpochAt(phase0.Slot(slot)),
		SlotInEpoch:   s.SlotInEpoch(phase0.Slot(slot)),
		SlotStartTime: startTime,
		MsIntoSlot:    t.Sub(startTime).Milliseconds(),
	}
}
