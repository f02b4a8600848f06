package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/ethpandaops/lab/chain"
	"github.com/ethpandaops/lab/handlers/api"
	"github.com/ethpandaops/lab/metrics"
	"github.com/ethpandaops/lab/player"
	"github.com/ethpandaops/lab/types"
	"github.com/ethpandaops/lab/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg
	logger := utils.InitLogger()

	logger.WithFields(logrus.Fields{
		"config":  *configPath,
		"version": utils.GetLabVersion(),
		"chain":   cfg.Chain.Name,
	}).Infof("starting")

	genesisTimestamp := cfg.Chain.GenesisTimestamp
	chainConfig := &cfg.Chain.Config

	// verify the local schedule against a beacon node if one is configured
	if cfg.BeaconApi.Endpoint != "" {
		remoteGenesis, remoteConfig, err := chain.FetchSchedule(ctx, cfg.BeaconApi.Endpoint, cfg.BeaconApi.Timeout, logger.WithField("module", "chain"))
		if err != nil {
			logger.Fatalf("error fetching chain schedule: %v", err)
		}

		mismatches := chainConfig.CheckMismatch(remoteConfig)
		if len(mismatches) > 0 {
			logger.Fatalf("chain config mismatch with beacon node: %v", strings.Join(mismatches, ", "))
		}

		genesisTimestamp = remoteGenesis
		chainConfig = remoteConfig
	}

	chainState, err := chain.NewState(genesisTimestamp, chainConfig)
	if err != nil {
		logger.Fatalf("error initializing chain state: %v", err)
	}
	chainState.InitWallclock()

	slotPlayer := startSlotPlayer(ctx, logger, cfg, chainState)

	if cfg.Metrics.Enabled {
		metrics.AddPreCollectFn(func() {
			metrics.SetClockGauges(uint64(chainState.CurrentSlot()), uint64(chainState.CurrentEpoch()))
			metrics.SetPlaybackSlotGauge(uint64(slotPlayer.State().CurrentSlot))
		})

		err = metrics.StartMetricsServer(logger.WithField("module", "metrics"), cfg.Metrics.Host, cfg.Metrics.Port)
		if err != nil {
			logger.Fatalf("error starting metrics server: %v", err)
		}
	}

	err = startWebserver(logger, cfg, chainState, slotPlayer)
	if err != nil {
		logger.Fatalf("error starting webserver: %v", err)
	}

	utils.WaitForCtrlC()
	logger.Println("exiting...")
}

// startSlotPlayer wires the playback state machine to the live wallclock:
// a ticker scheduler drives Tick, and the playable bounds follow the chain
// head on every slot change.
func startSlotPlayer(ctx context.Context, logger logrus.FieldLogger, cfg *types.Config, chainState *chain.State) *player.Player {
	currentSlot := chainState.CurrentSlot()

	minSlot := player.HistoryMinSlot(currentSlot, cfg.Player.HistorySlots)
	slotPlayer := player.NewPlayer(chainState.Schedule().SlotDuration(), minSlot, currentSlot)

	if cfg.Player.PlaybackSpeed > 0 {
		slotPlayer.SetPlaybackSpeed(cfg.Player.PlaybackSpeed)
	}

	tickInterval := cfg.Player.TickInterval
	if tickInterval == 0 {
		tickInterval = 200 * time.Millisecond
	}

	go slotPlayer.Run(ctx, player.TickerScheduler{}, tickInterval)

	go func() {
		defer utils.HandleSubroutinePanic("slotplayer.bounds")

		subscription := chainState.SubscribeSlotEvent(10)
		defer subscription.Unsubscribe()

		for {
			select {
			case slot := <-subscription.Channel():
				headSlot := chainState.CurrentSlot()
				slotPlayer.SetBounds(player.HistoryMinSlot(headSlot, cfg.Player.HistorySlots), headSlot)
				logger.WithField("slot", slot.Number()).Debug("updated playback bounds")
			case <-ctx.Done():
				return
			}
		}
	}()

	return slotPlayer
}

func startWebserver(logger logrus.FieldLogger, cfg *types.Config, chainState *chain.State, slotPlayer *player.Player) error {
	apiHandler := api.NewHandler(chainState, slotPlayer, logger.WithField("module", "api"))

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/clock", apiHandler.ClockV1).Methods("GET")
	router.HandleFunc("/api/v1/forks", apiHandler.NetworkForksV1).Methods("GET")
	router.HandleFunc("/api/v1/playback", apiHandler.PlaybackV1).Methods("GET")
	router.HandleFunc("/api/v1/playback/{action}", apiHandler.PlaybackControlV1).Methods("POST")

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.UseHandler(router)

	if cfg.Server.HttpWriteTimeout == 0 {
		cfg.Server.HttpWriteTimeout = time.Second * 15
	}
	if cfg.Server.HttpReadTimeout == 0 {
		cfg.Server.HttpReadTimeout = time.Second * 15
	}
	if cfg.Server.HttpIdleTimeout == 0 {
		cfg.Server.HttpIdleTimeout = time.Second * 60
	}
	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		WriteTimeout: cfg.Server.HttpWriteTimeout,
		ReadTimeout:  cfg.Server.HttpReadTimeout,
		IdleTimeout:  cfg.Server.HttpIdleTimeout,
		Handler:      n,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	logger.Infof("http server listening on %v", srv.Addr)
	go func() {
		if err := srv.Serve(listener); err != nil {
			logger.WithError(err).Fatal("Error serving api")
		}
	}()

	return nil
}
