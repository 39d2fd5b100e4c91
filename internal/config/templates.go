package config

import (
	"fmt"
	"os"
	"strings"
)

// Template returns a starter config. "default" carries the stock limits;
// "strict" tightens them for decoding untrusted captures.
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "default":
		return defaultTemplate, nil
	case "strict":
		return strictTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const defaultTemplate = `[limits]
max_path_depth = 65536
p2p_point_max_size = 47
advertise_max_ids = 100
nack_peers_max = 100
chain_name_max_size = 128
current_branch_history_max = 200
get_list_max = 10
block_header_max_size = 8192
fitness_max_elements = 16
fitness_element_max_size = 32
protocol_data_max_size = 4096
operation_max_size = 32768
operation_hashes_max = 10000
operations_max = 10000
mempool_max_operations = 10000
protocol_max_components = 256
protocol_component_max_size = 4194304
message_max_size = 8388608
response_max_messages = 1024

[log]
level = "info"
timestamp = true
no_color = false
json = false

[metrics]
# addr = "127.0.0.1:9464"
addr = ""
`

const strictTemplate = `[limits]
max_path_depth = 64
p2p_point_max_size = 47
advertise_max_ids = 50
nack_peers_max = 50
chain_name_max_size = 64
current_branch_history_max = 200
get_list_max = 10
block_header_max_size = 4096
fitness_max_elements = 8
fitness_element_max_size = 32
protocol_data_max_size = 2048
operation_max_size = 16384
operation_hashes_max = 2000
operations_max = 2000
mempool_max_operations = 2000
protocol_max_components = 64
protocol_component_max_size = 1048576
message_max_size = 2097152
response_max_messages = 64

[log]
level = "warn"
timestamp = true
no_color = true
json = true

[metrics]
addr = ""
`
