package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/attestantio/go-eth2-client/api"
	eth2http "github.com/attestantio/go-eth2-client/http"
	"github.com/mashingan/smapping"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/lab/types"
)

// FetchSchedule bootstraps the genesis time and chain config from a beacon node.
// This is a one-shot call per network selection, the returned config should be
// checked against the locally configured one via ChainConfig.CheckMismatch.
func FetchSchedule(ctx context.Context, endpoint string, timeout time.Duration, logger logrus.FieldLogger) (uint64, *types.ChainConfig, error) {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client, err := eth2http.New(ctx,
		eth2http.WithAddress(endpoint),
		eth2http.WithTimeout(timeout),
		eth2http.WithLogLevel(zerolog.Disabled),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("error connecting to beacon node %v: %w", endpoint, err)
	}

	service := client.(*eth2http.Service)

	genesis, err := service.Genesis(ctx, &api.GenesisOpts{})
	if err != nil {
		return 0, nil, fmt.Errorf("error fetching genesis: %w", err)
	}

	spec, err := service.Spec(ctx, &api.SpecOpts{})
	if err != nil {
		return 0, nil, fmt.Errorf("error fetching chain spec: %w", err)
	}

	chainConfig := &types.ChainConfig{}

	err = smapping.FillStructByTags(chainConfig, NormalizeSpec(spec.Data), "yaml")
	if err != nil {
		return 0, nil, fmt.Errorf("error mapping chain spec: %w", err)
	}

	genesisTimestamp := uint64(genesis.Data.GenesisTime.Unix())

	logger.WithFields(logrus.Fields{
		"endpoint":         endpoint,
		"configName":       chainConfig.ConfigName,
		"genesisTimestamp": genesisTimestamp,
	}).Info("fetched chain schedule from beacon node")

	return genesisTimestamp, chainConfig, nil
}
