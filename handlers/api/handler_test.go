package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/lab/chain"
	"github.com/ethpandaops/lab/player"
	"github.com/ethpandaops/lab/types"
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func testHandler(t *testing.T) (*Handler, *player.Player) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	// genesis in the recent past so the clock reads a small positive slot
	genesisTimestamp := uint64(time.Now().Unix()) - 1000

	chainState, err := chain.NewState(genesisTimestamp, &types.ChainConfig{
		ConfigName:         "testnet",
		GenesisForkVersion: "0x00000000",
		AltairForkVersion:  "0x01000000",
		AltairForkEpoch:    uint64Ptr(2),
		SecondsPerSlot:     12,
		SlotsPerEpoch:      32,
	})
	require.NoError(t, err)

	slotPlayer := player.NewPlayer(chainState.Schedule().SlotDuration(), 10, 50)

	return NewHandler(chainState, slotPlayer, logrus.NewEntry(logger)), slotPlayer
}

func testRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/clock", h.ClockV1).Methods("GET")
	router.HandleFunc("/api/v1/forks", h.NetworkForksV1).Methods("GET")
	router.HandleFunc("/api/v1/playback", h.PlaybackV1).Methods("GET")
	router.HandleFunc("/api/v1/playback/{action}", h.PlaybackControlV1).Methods("POST")

	return router
}

func TestClockV1(t *testing.T) {
	handler, _ := testHandler(t)
	router := testRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clock", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	response := APIClockResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Data)

	assert.Equal(t, "OK", response.Status)
	assert.Equal(t, "testnet", response.Data.Network)
	assert.Equal(t, response.Data.Slot/32, response.Data.Epoch)
	assert.GreaterOrEqual(t, response.Data.SlotInEpoch, uint64(1))
	assert.LessOrEqual(t, response.Data.SlotInEpoch, uint64(32))
	assert.GreaterOrEqual(t, response.Data.MsIntoSlot, int64(0))
	assert.Less(t, response.Data.MsIntoSlot, int64(12000))
	assert.Equal(t, "altair", response.Data.Fork)
}

func TestNetworkForksV1(t *testing.T) {
	handler, _ := testHandler(t)
	router := testRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	response := APINetworkForksResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Data)

	assert.Equal(t, "testnet", response.Data.ConfigName)
	require.Equal(t, uint64(2), response.Data.Count)
	assert.Equal(t, "phase0", response.Data.Forks[0].Name)
	assert.Equal(t, "altair", response.Data.Forks[1].Name)
	assert.Equal(t, uint64(2), response.Data.Forks[1].Epoch)
}

func TestPlaybackV1(t *testing.T) {
	handler, slotPlayer := testHandler(t)
	router := testRouter(handler)

	slotPlayer.GoToSlot(42)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/playback", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	response := APIPlaybackResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Data)

	assert.Equal(t, uint64(42), response.Data.CurrentSlot)
	assert.Equal(t, "continuous", response.Data.Mode)
	assert.False(t, response.Data.IsPlaying)
	assert.Equal(t, uint64(10), response.Data.MinSlot)
	assert.Equal(t, uint64(50), response.Data.MaxSlot)
}

func TestPlaybackControlV1(t *testing.T) {
	handler, slotPlayer := testHandler(t)
	router := testRouter(handler)

	post := func(t *testing.T, path string) *APIPlaybackData {
		t.Helper()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		response := APIPlaybackResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.NotNil(t, response.Data)

		return response.Data
	}

	t.Run("PlayPause", func(t *testing.T) {
		assert.True(t, post(t, "/api/v1/playback/play").IsPlaying)
		assert.False(t, post(t, "/api/v1/playback/pause").IsPlaying)
		assert.True(t, post(t, "/api/v1/playback/toggle").IsPlaying)
		slotPlayer.Pause()
	})

	t.Run("GotoClamped", func(t *testing.T) {
		assert.Equal(t, uint64(30), post(t, "/api/v1/playback/goto?slot=30").CurrentSlot)
		assert.Equal(t, uint64(50), post(t, "/api/v1/playback/goto?slot=99").CurrentSlot)
	})

	t.Run("Stepping", func(t *testing.T) {
		slotPlayer.GoToSlot(30)
		assert.Equal(t, uint64(31), post(t, "/api/v1/playback/next").CurrentSlot)
		assert.Equal(t, uint64(30), post(t, "/api/v1/playback/previous").CurrentSlot)
	})

	t.Run("SpeedAndMode", func(t *testing.T) {
		assert.Equal(t, float64(2), post(t, "/api/v1/playback/speed?speed=2").PlaybackSpeed)
		assert.Equal(t, "single", post(t, "/api/v1/playback/mode?mode=single").Mode)
	})

	t.Run("BadRequests", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/playback/goto?slot=abc",
			"/api/v1/playback/speed?speed=abc",
			"/api/v1/playback/mode?mode=abc",
		} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/playback/unknown", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
