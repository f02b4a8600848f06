package config

import (
	_ "embed"
)

// default explorer config
//
//go:embed default.config.yml
var DefaultConfigYml string

// chain configs
//
//go:embed mainnet.chain.yml
var MainnetChainYml string

//go:embed sepolia.chain.yml
var SepoliaChainYml string

//go:embed holesky.chain.yml
var HoleskyChainYml string

//go:embed hoodi.chain.yml
var HoodiChainYml string

// chain presets
//
//go:embed mainnet.preset.yml
var MainnetPresetYml string

//go:embed minimal.preset.yml
var MinimalPresetYml string
