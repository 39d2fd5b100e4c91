package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/p2pcodec/internal/logging"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
)

func TestDefaultTemplateMatchesDefault(t *testing.T) {
	text, err := Template("default")
	require.NoError(t, err)
	cfg, err := Parse(text)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("default template drifted from Default() (-want +got):\n%s", diff)
	}
}

func TestStrictTemplateValidates(t *testing.T) {
	text, err := Template("strict")
	require.NoError(t, err)
	cfg, err := Parse(text)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Limits.MaxPathDepth)
	require.True(t, cfg.Log.JSON)
	require.Less(t, cfg.Limits.MessageMaxSize, Default().Limits.MessageMaxSize)
}

func TestTemplateUnknownKind(t *testing.T) {
	_, err := Template("relay")
	require.Error(t, err)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse("[limits]\nget_list_max = 3\n")
	require.NoError(t, err)

	want := Default()
	want.Limits.GetListMax = 3
	require.Equal(t, want, cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse("[limits]\nmax_depth = 3\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "limits.max_depth")
}

func TestParseRejectsMalformedToml(t *testing.T) {
	_, err := Parse("[limits\n")
	require.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxPathDepth = 0
	cfg.Limits.GetListMax = -1
	cfg.Log.Level = "loud"
	cfg.Metrics.Addr = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 4)
	for _, key := range []string{"max_path_depth", "get_list_max", "log.level", "metrics.addr"} {
		require.Contains(t, err.Error(), key)
	}
}

func TestValidateNestedSizes(t *testing.T) {
	cfg := Default()
	cfg.Limits.OperationMaxSize = cfg.Limits.MessageMaxSize + 1
	cfg.Limits.ProtocolDataMaxSize = cfg.Limits.BlockHeaderMaxSize + 1

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "operation_max_size")
	require.Contains(t, err.Error(), "protocol_data_max_size")
}

func TestValidateAcceptsMetricsAddr(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Addr = "127.0.0.1:9464"
	require.NoError(t, Validate(cfg))
}

func TestWriteTemplateThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p2pcodec.toml")
	require.NoError(t, WriteTemplate(path, "strict", false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Limits.ResponseMaxMessages)

	err = WriteTemplate(path, "default", false)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "already exists"))
	require.NoError(t, WriteTemplate(path, "default", true))
}

func TestLoadNamesThePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[limits]\nmessage_max_size = 0\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestCodecLimits(t *testing.T) {
	require.Equal(t, messages.DefaultLimits(), Default().CodecLimits())

	cfg := Default()
	cfg.Limits.MaxPathDepth = 12
	require.Equal(t, 12, cfg.CodecLimits().MaxPathDepth)
}

func TestLoggingConfig(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "")
	t.Setenv(logging.EnvLogTimestamp, "")
	t.Setenv(logging.EnvLogNoColor, "")
	t.Setenv(logging.EnvLogJSON, "")

	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.JSON = true
	out := cfg.LoggingConfig()
	require.Equal(t, zerolog.DebugLevel, out.Level)
	require.True(t, out.JSON)

	t.Setenv(logging.EnvLogLevel, "error")
	require.Equal(t, zerolog.ErrorLevel, cfg.LoggingConfig().Level)
}
