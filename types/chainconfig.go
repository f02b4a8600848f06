package types

import (
	"reflect"
)

// FarFutureEpoch marks a fork that is defined but not scheduled yet.
const FarFutureEpoch = uint64(18446744073709551615)

// ChainConfig holds the clock relevant subset of a consensus layer chain config.
// https://github.com/ethereum/consensus-specs/blob/dev/configs/mainnet.yaml
type ChainConfig struct {
	PresetBase           string  `yaml:"PRESET_BASE"`
	ConfigName           string  `yaml:"CONFIG_NAME" check-if:"false"`
	MinGenesisTime       uint64  `yaml:"MIN_GENESIS_TIME"`
	GenesisDelay         uint64  `yaml:"GENESIS_DELAY"`
	GenesisForkVersion   string  `yaml:"GENESIS_FORK_VERSION"`
	AltairForkVersion    string  `yaml:"ALTAIR_FORK_VERSION"`
	AltairForkEpoch      *uint64 `yaml:"ALTAIR_FORK_EPOCH"`
	BellatrixForkVersion string  `yaml:"BELLATRIX_FORK_VERSION"`
	BellatrixForkEpoch   *uint64 `yaml:"BELLATRIX_FORK_EPOCH"`
	CapellaForkVersion   string  `yaml:"CAPELLA_FORK_VERSION"`
	CapellaForkEpoch     *uint64 `yaml:"CAPELLA_FORK_EPOCH"`
	DenebForkVersion     string  `yaml:"DENEB_FORK_VERSION"`
	DenebForkEpoch       *uint64 `yaml:"DENEB_FORK_EPOCH"`
	ElectraForkVersion   string  `yaml:"ELECTRA_FORK_VERSION" check-if-fork:"ElectraForkEpoch"`
	ElectraForkEpoch     *uint64 `yaml:"ELECTRA_FORK_EPOCH"`
	FuluForkVersion      string  `yaml:"FULU_FORK_VERSION" check-if-fork:"FuluForkEpoch"`
	FuluForkEpoch        *uint64 `yaml:"FULU_FORK_EPOCH"`
	SecondsPerSlot       uint64  `yaml:"SECONDS_PER_SLOT"`
	SlotsPerEpoch        uint64  `yaml:"SLOTS_PER_EPOCH"`
}

// CheckMismatch compares two chain configs and returns the names of all conflicting fields.
// Fields tagged check-if:"false" are skipped, fields tagged check-if-fork are only compared
// when the referenced fork epoch is scheduled on the receiver side.
func (chain *ChainConfig) CheckMismatch(chain2 *ChainConfig) []string {
	mismatches := []string{}

	chainT := reflect.ValueOf(chain).Elem()
	chain2T := reflect.ValueOf(chain2).Elem()

	for i := 0; i < chainT.NumField(); i++ {
		fieldT := chainT.Type().Field(i)

		if fieldT.Tag.Get("check-if") == "false" {
			continue
		}

		if checkIfFork := fieldT.Tag.Get("check-if-fork"); checkIfFork != "" {
			forkEpoch := chainT.FieldByName(checkIfFork)
			if forkEpoch.IsNil() || forkEpoch.Elem().Uint() >= FarFutureEpoch {
				continue
			}
		}

		fieldV := chainT.Field(i)
		field2V := chain2T.Field(i)

		if fieldV.Type().Kind() == reflect.Ptr {
			if !fieldV.IsNil() {
				fieldV = fieldV.Elem()
			}
			if !field2V.IsNil() {
				field2V = field2V.Elem()
			}
		}

		if fieldV.Interface() != field2V.Interface() {
			if chainT.Field(i).Interface() == reflect.Zero(chainT.Field(i).Type()).Interface() {
				// 0 value on chain side are allowed
				continue
			}
			mismatches = append(mismatches, fieldT.Name)
		}
	}

	return mismatches
}

// Clone returns a shallow copy of the chain config.
func (chain *ChainConfig) Clone() *ChainConfig {
	res := &ChainConfig{}
	chainT := reflect.ValueOf(chain).Elem()
	chain2T := reflect.ValueOf(res).Elem()

	for i := 0; i < chainT.NumField(); i++ {
		chain2T.Field(i).Set(chainT.Field(i))
	}

	return res
}
