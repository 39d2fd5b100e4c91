package config

import (
	"fmt"
	"math"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/danmuck/p2pcodec/internal/logging"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
)

// Config is the on-disk configuration of the codec tools.
type Config struct {
	Limits  LimitsConfig  `toml:"limits"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LimitsConfig mirrors messages.Limits field for field.
type LimitsConfig struct {
	MaxPathDepth             int `toml:"max_path_depth"`
	P2PPointMaxSize          int `toml:"p2p_point_max_size"`
	AdvertiseMaxIDs          int `toml:"advertise_max_ids"`
	NackPeersMax             int `toml:"nack_peers_max"`
	ChainNameMaxSize         int `toml:"chain_name_max_size"`
	CurrentBranchHistoryMax  int `toml:"current_branch_history_max"`
	GetListMax               int `toml:"get_list_max"`
	BlockHeaderMaxSize       int `toml:"block_header_max_size"`
	FitnessMaxElements       int `toml:"fitness_max_elements"`
	FitnessElementMaxSize    int `toml:"fitness_element_max_size"`
	ProtocolDataMaxSize      int `toml:"protocol_data_max_size"`
	OperationMaxSize         int `toml:"operation_max_size"`
	OperationHashesMax       int `toml:"operation_hashes_max"`
	OperationsMax            int `toml:"operations_max"`
	MempoolMaxOperations     int `toml:"mempool_max_operations"`
	ProtocolMaxComponents    int `toml:"protocol_max_components"`
	ProtocolComponentMaxSize int `toml:"protocol_component_max_size"`
	MessageMaxSize           int `toml:"message_max_size"`
	ResponseMaxMessages      int `toml:"response_max_messages"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
	JSON      bool   `toml:"json"`
}

type MetricsConfig struct {
	// Addr is where replay serves /metrics; empty disables it.
	Addr string `toml:"addr"`
}

func Default() Config {
	return Config{
		Limits: limitsFrom(messages.DefaultLimits()),
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// Load reads path over the defaults and validates the result. Keys the
// file sets that Config does not know are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "config parse failed")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config has unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem in cfg, not just the first.
func Validate(cfg Config) error {
	var result *multierror.Error
	l := cfg.Limits

	positive := []struct {
		name  string
		value int
	}{
		{"max_path_depth", l.MaxPathDepth},
		{"p2p_point_max_size", l.P2PPointMaxSize},
		{"advertise_max_ids", l.AdvertiseMaxIDs},
		{"nack_peers_max", l.NackPeersMax},
		{"chain_name_max_size", l.ChainNameMaxSize},
		{"current_branch_history_max", l.CurrentBranchHistoryMax},
		{"get_list_max", l.GetListMax},
		{"block_header_max_size", l.BlockHeaderMaxSize},
		{"fitness_max_elements", l.FitnessMaxElements},
		{"fitness_element_max_size", l.FitnessElementMaxSize},
		{"protocol_data_max_size", l.ProtocolDataMaxSize},
		{"operation_max_size", l.OperationMaxSize},
		{"operation_hashes_max", l.OperationHashesMax},
		{"operations_max", l.OperationsMax},
		{"mempool_max_operations", l.MempoolMaxOperations},
		{"protocol_max_components", l.ProtocolMaxComponents},
		{"protocol_component_max_size", l.ProtocolComponentMaxSize},
		{"message_max_size", l.MessageMaxSize},
		{"response_max_messages", l.ResponseMaxMessages},
	}
	for _, p := range positive {
		if p.value <= 0 {
			result = multierror.Append(result, fmt.Errorf("limits.%s must be positive, got %d", p.name, p.value))
		}
	}

	if l.MessageMaxSize > 0 && uint64(l.MessageMaxSize) > math.MaxUint32 {
		result = multierror.Append(result, fmt.Errorf("limits.message_max_size %d does not fit a u32 size field", l.MessageMaxSize))
	}
	within := []struct {
		name  string
		value int
	}{
		{"block_header_max_size", l.BlockHeaderMaxSize},
		{"operation_max_size", l.OperationMaxSize},
		{"protocol_component_max_size", l.ProtocolComponentMaxSize},
	}
	for _, w := range within {
		if l.MessageMaxSize > 0 && w.value > l.MessageMaxSize {
			result = multierror.Append(result, fmt.Errorf("limits.%s %d exceeds message_max_size %d", w.name, w.value, l.MessageMaxSize))
		}
	}
	if l.ProtocolDataMaxSize > l.BlockHeaderMaxSize {
		result = multierror.Append(result, fmt.Errorf("limits.protocol_data_max_size %d exceeds block_header_max_size %d", l.ProtocolDataMaxSize, l.BlockHeaderMaxSize))
	}

	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		result = multierror.Append(result, fmt.Errorf("log.level %q is not a known level", cfg.Log.Level))
	}
	if addr := strings.TrimSpace(cfg.Metrics.Addr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			result = multierror.Append(result, fmt.Errorf("metrics.addr %q: %w", addr, err))
		}
	}
	return result.ErrorOrNil()
}
