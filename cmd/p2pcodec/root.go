package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/p2pcodec/internal/config"
	"github.com/danmuck/p2pcodec/internal/logging"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
)

// app is the state every subcommand shares once the root flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg   config.Config
	codec *messages.Codec
	log   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "p2pcodec",
		Short:         "Decode, encode and replay Tezos peer-to-peer messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML config file (defaults apply when empty)")
	flags.StringVar(&a.logLevel, "log-level", "", "override log level (trace|debug|info|warn|error|off)")
	flags.BoolVar(&a.logJSON, "log-json", false, "emit JSON log lines")

	root.AddCommand(
		newDecodeCmd(a),
		newRoundtripCmd(a),
		newReplayCmd(a),
		newConfigCmd(a),
		newChainIDCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logJSON {
		cfg.Log.JSON = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	a.log = logging.Install(logCfg).With().Str("cmd", cmd.Name()).Logger()
	a.cfg = cfg
	a.codec = messages.NewCodec(cfg.CodecLimits())
	if a.configPath != "" {
		a.log.Debug().Str("path", a.configPath).Msg("loaded config")
	}
	return nil
}
