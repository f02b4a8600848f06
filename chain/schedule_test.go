package chain

import (
	"testing"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/lab/types"
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func testChainConfig() *types.ChainConfig {
	return &types.ChainConfig{
		ConfigName:           "testnet",
		GenesisForkVersion:   "0x00000000",
		AltairForkVersion:    "0x01000000",
		AltairForkEpoch:      uint64Ptr(100),
		BellatrixForkVersion: "0x02000000",
		BellatrixForkEpoch:   uint64Ptr(200),
		FuluForkVersion:      "0x06000000",
		FuluForkEpoch:        uint64Ptr(types.FarFutureEpoch),
		SecondsPerSlot:       12,
		SlotsPerEpoch:        32,
	}
}

func testSchedule(t *testing.T) *Schedule {
	t.Helper()

	schedule, err := NewSchedule(1606824023, testChainConfig())
	require.NoError(t, err)

	return schedule
}

func TestNewSchedule_Validation(t *testing.T) {
	t.Run("MissingGenesisTime", func(t *testing.T) {
		_, err := NewSchedule(0, testChainConfig())
		assert.Error(t, err)
	})

	t.Run("ZeroSlotDuration", func(t *testing.T) {
		cfg := testChainConfig()
		cfg.SecondsPerSlot = 0
		_, err := NewSchedule(1606824023, cfg)
		assert.Error(t, err)
	})

	t.Run("ZeroSlotsPerEpoch", func(t *testing.T) {
		cfg := testChainConfig()
		cfg.SlotsPerEpoch = 0
		_, err := NewSchedule(1606824023, cfg)
		assert.Error(t, err)
	})

	t.Run("UnscheduledForksExcluded", func(t *testing.T) {
		schedule := testSchedule(t)

		forks := schedule.Forks()
		require.Len(t, forks, 3)
		assert.Equal(t, "phase0", forks[0].Name)
		assert.Equal(t, "altair", forks[1].Name)
		assert.Equal(t, "bellatrix", forks[2].Name)
	})
}

func TestSchedule_SlotMath(t *testing.T) {
	schedule := testSchedule(t)

	t.Run("EpochOfSlot", func(t *testing.T) {
		assert.Equal(t, phase0.Epoch(0), schedule.EpochAt(0))
		assert.Equal(t, phase0.Epoch(0), schedule.EpochAt(31))
		assert.Equal(t, phase0.Epoch(1), schedule.EpochAt(32))
		assert.Equal(t, phase0.Epoch(312), schedule.EpochAt(10000))
	})

	t.Run("SlotInEpoch", func(t *testing.T) {
		assert.Equal(t, uint64(1), schedule.SlotInEpoch(0))
		assert.Equal(t, uint64(32), schedule.SlotInEpoch(31))
		assert.Equal(t, uint64(1), schedule.SlotInEpoch(32))

		for slot := phase0.Slot(0); slot < 100; slot++ {
			pos := schedule.SlotInEpoch(slot)
			assert.GreaterOrEqual(t, pos, uint64(1))
			assert.LessOrEqual(t, pos, uint64(32))
		}
	})

	t.Run("SlotTimeRoundTrip", func(t *testing.T) {
		for _, slot := range []phase0.Slot{0, 1, 31, 32, 12345, 10000000} {
			assert.Equal(t, int64(slot), schedule.SlotAt(schedule.SlotStartTime(slot)))
		}
	})

	t.Run("SlotAtWithinSlot", func(t *testing.T) {
		startTime := schedule.SlotStartTime(100)
		assert.Equal(t, int64(100), schedule.SlotAt(startTime.Add(11*time.Second)))
		assert.Equal(t, int64(101), schedule.SlotAt(startTime.Add(12*time.Second)))
	})

	t.Run("PreGenesis", func(t *testing.T) {
		genesis := schedule.GenesisTime()
		assert.Equal(t, int64(0), schedule.SlotAt(genesis))
		assert.Equal(t, int64(-1), schedule.SlotAt(genesis.Add(-1*time.Second)))
		assert.Equal(t, int64(-1), schedule.SlotAt(genesis.Add(-12*time.Second)))
		assert.Equal(t, int64(-2), schedule.SlotAt(genesis.Add(-13*time.Second)))
	})

	t.Run("EpochStartSlot", func(t *testing.T) {
		assert.Equal(t, phase0.Slot(0), schedule.EpochStartSlot(0))
		assert.Equal(t, phase0.Slot(320), schedule.EpochStartSlot(10))
	})

	t.Run("EpochDuration", func(t *testing.T) {
		assert.Equal(t, 384*time.Second, schedule.EpochDuration())
	})
}

func TestSchedule_ForkAt(t *testing.T) {
	schedule := testSchedule(t)

	assert.Equal(t, "phase0", schedule.ForkAt(50).Name)
	assert.Equal(t, "altair", schedule.ForkAt(100).Name)
	assert.Equal(t, "altair", schedule.ForkAt(150).Name)
	assert.Equal(t, "bellatrix", schedule.ForkAt(200).Name)
	assert.Equal(t, "bellatrix", schedule.ForkAt(250).Name)
}

func TestIsEpochAtOrAfter(t *testing.T) {
	assert.False(t, IsEpochAtOrAfter(150, nil), "unscheduled fork must never count as reached")
	assert.False(t, IsEpochAtOrAfter(150, uint64Ptr(types.FarFutureEpoch)))
	assert.True(t, IsEpochAtOrAfter(150, uint64Ptr(150)))
	assert.True(t, IsEpochAtOrAfter(151, uint64Ptr(150)))
	assert.False(t, IsEpochAtOrAfter(149, uint64Ptr(150)))
}

func TestSchedule_Reading(t *testing.T) {
	schedule := testSchedule(t)

	t.Run("MidSlot", func(t *testing.T) {
		slotTime := schedule.SlotStartTime(4711).Add(3500 * time.Millisecond)
		reading := schedule.Reading(slotTime)

		assert.Equal(t, phase0.Slot(4711), reading.Slot)
		assert.Equal(t, phase0.Epoch(147), reading.Epoch)
		assert.Equal(t, uint64(8), reading.SlotInEpoch)
		assert.Equal(t, schedule.SlotStartTime(4711), reading.SlotStartTime)
		assert.Equal(t, int64(3500), reading.MsIntoSlot)
	})

	t.Run("PreGenesisClamped", func(t *testing.T) {
		reading := schedule.Reading(schedule.GenesisTime().Add(-time.Hour))

		assert.Equal(t, phase0.Slot(0), reading.Slot)
		assert.Equal(t, phase0.Epoch(0), reading.Epoch)
		assert.Equal(t, int64(0), reading.MsIntoSlot)
		assert.Equal(t, schedule.GenesisTime(), reading.SlotStartTime)
	})
}
