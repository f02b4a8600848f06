package types

import "time"

// Config is a struct to hold the configuration data
type Config struct {
	Logging struct {
		OutputLevel  string `yaml:"outputLevel" envconfig:"LOGGING_OUTPUT_LEVEL"`
		OutputStderr bool   `yaml:"outputStderr" envconfig:"LOGGING_OUTPUT_STDERR"`
	} `yaml:"logging"`

	Server struct {
		Port string `yaml:"port" envconfig:"SERVER_PORT"`
		Host string `yaml:"host" envconfig:"SERVER_HOST"`

		HttpReadTimeout  time.Duration `yaml:"httpReadTimeout" envconfig:"SERVER_HTTP_READ_TIMEOUT"`
		HttpWriteTimeout time.Duration `yaml:"httpWriteTimeout" envconfig:"SERVER_HTTP_WRITE_TIMEOUT"`
		HttpIdleTimeout  time.Duration `yaml:"httpIdleTimeout" envconfig:"SERVER_HTTP_IDLE_TIMEOUT"`
	} `yaml:"server"`

	Chain struct {
		Name             string `yaml:"name" envconfig:"CHAIN_NAME"`
		DisplayName      string `yaml:"displayName" envconfig:"CHAIN_DISPLAY_NAME"`
		ConfigPath       string `yaml:"configPath" envconfig:"CHAIN_CONFIG_PATH"`
		GenesisTimestamp uint64 `yaml:"genesisTimestamp" envconfig:"CHAIN_GENESIS_TIMESTAMP"`

		Config ChainConfig `yaml:"-"`
	} `yaml:"chain"`

	BeaconApi struct {
		Endpoint string        `yaml:"endpoint" envconfig:"BEACONAPI_ENDPOINT"`
		Timeout  time.Duration `yaml:"timeout" envconfig:"BEACONAPI_TIMEOUT"`
	} `yaml:"beaconapi"`

	Player struct {
		TickInterval  time.Duration `yaml:"tickInterval" envconfig:"PLAYER_TICK_INTERVAL"`
		HistorySlots  uint64        `yaml:"historySlots" envconfig:"PLAYER_HISTORY_SLOTS"`
		PlaybackSpeed float64       `yaml:"playbackSpeed" envconfig:"PLAYER_PLAYBACK_SPEED"`
	} `yaml:"player"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" envconfig:"METRICS_ENABLED"`
		Host    string `yaml:"host" envconfig:"METRICS_HOST"`
		Port    string `yaml:"port" envconfig:"METRICS_PORT"`
	} `yaml:"metrics"`
}
