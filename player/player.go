package player

import (
	"sync"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// Mode selects how the player behaves when a slot completes.
type Mode int

const (
	// ModeContinuous advances to the next slot and keeps playing.
	ModeContinuous Mode = iota
	// ModeSingle stops at the end of the current slot.
	ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the playback state, safe to hand out to
// any number of readers while the player keeps ticking.
type State struct {
	CurrentSlot   phase0.Slot
	SlotProgress  time.Duration
	IsPlaying     bool
	Mode          Mode
	PlaybackSpeed float64
	MinSlot       phase0.Slot
	MaxSlot       phase0.Slot
}

// Player is the slot playback state machine. All mutation goes through its
// methods, readers get consistent snapshots via State().
//
// The viewed slot tracked here is independent from the live chain clock.
// Bounds follow the live head via SetBounds, scrubbing backwards never
// touches the wallclock.
type Player struct {
	mutex sync.Mutex

	slotDuration time.Duration
	currentSlot  phase0.Slot
	slotProgress time.Duration
	playing      bool
	mode         Mode
	speed        float64
	minSlot      phase0.Slot
	maxSlot      phase0.Slot
}

// HistoryMinSlot returns the lower playback bound for a head slot and a
// history window, clamped at slot 0.
func HistoryMinSlot(head phase0.Slot, historySlots uint64) phase0.Slot {
	if uint64(head) <= historySlots {
		return 0
	}

	return head - phase0.Slot(historySlots)
}

// NewPlayer creates a paused player positioned at maxSlot (the live head view).
func NewPlayer(slotDuration time.Duration, minSlot, maxSlot phase0.Slot) *Player {
	if maxSlot < minSlot {
		maxSlot = minSlot
	}

	return &Player{
		slotDuration: slotDuration,
		currentSlot:  maxSlot,
		mode:         ModeContinuous,
		speed:        1,
		minSlot:      minSlot,
		maxSlot:      maxSlot,
	}
}

// State returns a snapshot of the current playback state.
func (p *Player) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return State{
		CurrentSlot:   p.currentSlot,
		SlotProgress:  p.slotProgress,
		IsPlaying:     p.playing,
		Mode:          p.mode,
		PlaybackSpeed: p.speed,
		MinSlot:       p.minSlot,
		MaxSlot:       p.maxSlot,
	}
}

func (p *Player) Play() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.playing = true
}

func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.playing = false
}

func (p *Player) Toggle() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.playing = !p.playing
}

// Tick advances playback by the given wall time. It is a no-op while paused
// or for non-positive elapsed time.
//
// In continuous mode each completed slot duration moves the cursor one slot
// forward, reaching maxSlot pauses playback. In single mode progress is
// clamped to the slot duration and playback pauses.
func (p *Player) Tick(elapsed time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.playing || elapsed <= 0 {
		return
	}

	p.slotProgress += time.Duration(float64(elapsed) * p.speed)

	for p.slotProgress >= p.slotDuration {
		if p.mode == ModeSingle {
			p.slotProgress = p.slotDuration
			p.playing = false

			return
		}

		if p.currentSlot >= p.maxSlot {
			p.slotProgress = p.slotDuration
			p.playing = false

			return
		}

		p.currentSlot++
		p.slotProgress -= p.slotDuration
	}
}

// NextSlot steps one slot forward, clamped to maxSlot. Progress resets in
// any case.
func (p *Player) NextSlot() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.currentSlot < p.maxSlot {
		p.currentSlot++
	}

	p.slotProgress = 0
}

// PreviousSlot steps one slot back, clamped to minSlot. Progress resets in
// any case.
func (p *Player) PreviousSlot() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.currentSlot > p.minSlot {
		p.currentSlot--
	}

	p.slotProgress = 0
}

// GoToSlot jumps to the given slot, clamped to the playback bounds.
func (p *Player) GoToSlot(slot phase0.Slot) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.currentSlot = p.clampSlot(slot)
	p.slotProgress = 0
}

// Rewind resets progress within the current slot.
func (p *Player) Rewind() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.slotProgress = 0
}

// FastForward moves progress to the end of the current slot, the next tick
// rolls over immediately.
func (p *Player) FastForward() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.slotProgress = p.slotDuration
}

// SetPlaybackSpeed updates the playback speed multiplier. Non-positive values
// are ignored and the previous speed is retained.
func (p *Player) SetPlaybackSpeed(speed float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if speed <= 0 {
		return
	}

	p.speed = speed
}

// SetMode switches the playback mode without resetting progress.
func (p *Player) SetMode(mode Mode) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.mode = mode
}

// SetBounds updates the playable slot range and re-clamps the current slot.
// The bounds usually follow the live chain head as new slots arrive.
func (p *Player) SetBounds(minSlot, maxSlot phase0.Slot) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if maxSlot < minSlot {
		maxSlot = minSlot
	}

	p.minSlot = minSlot
	p.maxSlot = maxSlot

	clamped := p.clampSlot(p.currentSlot)
	if clamped != p.currentSlot {
		p.currentSlot = clamped
		p.slotProgress = 0
	}
}

func (p *Player) clampSlot(slot phase0.Slot) phase0.Slot {
	if slot < p.minSlot {
		return p.minSlot
	}

	if slot > p.maxSlot {
		return p.maxSlot
	}

	return slot
}
