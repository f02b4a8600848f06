package chain

import (
	"fmt"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// NormalizeSpec converts the typed values of a beacon node spec query into the
// plain representation used by the chain config yaml tags, so the result can be
// mapped onto a ChainConfig struct.
func NormalizeSpec(data map[string]any) map[string]any {
	config := make(map[string]any)
	for k, v := range data {
		switch value := v.(type) {
		case time.Duration:
			config[k] = uint64(value.Seconds())
		case time.Time:
			config[k] = uint64(value.Unix())
		case phase0.Version:
			config[k] = fmt.Sprintf("%#x", value[:])
		case phase0.DomainType:
			config[k] = fmt.Sprintf("%#x", value[:])
		case []byte:
			config[k] = fmt.Sprintf("%#x", value)
		default:
			config[k] = v
		}
	}

	return config
}
