package chain

import (
	"math"
	"sync"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethpandaops/ethwallclock"

	"github.com/ethpandaops/lab/types"
	"github.com/ethpandaops/lab/utils"
)

// State tracks the live "now" of a chain: a validated schedule plus a ticking
// wallclock with slot/epoch change fan-out. It is independent from any playback
// cursor, scrubbing a player to historical slots never affects it.
type State struct {
	schedule *Schedule
	config   *types.ChainConfig

	wallclockMutex sync.Mutex
	wallclock      *ethwallclock.EthereumBeaconChain

	wallclockEpochDispatcher utils.Dispatcher[*ethwallclock.Epoch]
	wallclockSlotDispatcher  utils.Dispatcher[*ethwallclock.Slot]
}

// NewState validates the chain config and builds the live chain state.
func NewState(genesisTimestamp uint64, cfg *types.ChainConfig) (*State, error) {
	schedule, err := NewSchedule(genesisTimestamp, cfg)
	if err != nil {
		return nil, err
	}

	return &State{
		schedule: schedule,
		config:   cfg,
	}, nil
}

func (cs *State) Schedule() *Schedule {
	return cs.schedule
}

func (cs *State) Config() *types.ChainConfig {
	return cs.config
}

// InitWallclock starts the ticking wallclock. Safe to call multiple times.
func (cs *State) InitWallclock() {
	cs.wallclockMutex.Lock()
	defer cs.wallclockMutex.Unlock()

	if cs.wallclock != nil {
		return
	}

	cs.wallclock = ethwallclock.NewEthereumBeaconChain(cs.schedule.GenesisTime(), cs.schedule.SlotDuration(), cs.schedule.SlotsPerEpoch())
	cs.wallclock.OnEpochChanged(func(current ethwallclock.Epoch) {
		cs.wallclockEpochDispatcher.Fire(&current)
	})
	cs.wallclock.OnSlotChanged(func(current ethwallclock.Slot) {
		cs.wallclockSlotDispatcher.Fire(&current)
	})
}

func (cs *State) CurrentSlot() phase0.Slot {
	if cs.wallclock == nil {
		return 0
	}

	slot, _, err := cs.wallclock.Now()
	if err != nil {
		return 0
	}

	if slot.Number() > uint64(math.MaxInt64) {
		return 0
	}

	return phase0.Slot(slot.Number())
}

func (cs *State) CurrentEpoch() phase0.Epoch {
	if cs.wallclock == nil {
		return 0
	}

	_, epoch, err := cs.wallclock.Now()
	if err != nil {
		return 0
	}

	if epoch.Number() > uint64(math.MaxInt64) {
		return 0
	}

	return phase0.Epoch(epoch.Number())
}

func (cs *State) SubscribeSlotEvent(capacity int) *utils.Subscription[*ethwallclock.Slot] {
	return cs.wallclockSlotDispatcher.Subscribe(capacity, false)
}

func (cs *State) SubscribeEpochEvent(capacity int) *utils.Subscription[*ethwallclock.Epoch] {
	return cs.wallclockEpochDispatcher.Subscribe(capacity, false)
}
