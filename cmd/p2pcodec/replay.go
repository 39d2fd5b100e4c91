package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/danmuck/p2pcodec/internal/observability"
	"github.com/danmuck/p2pcodec/internal/protocol/stream"
)

type replayOptions struct {
	file        string
	connection  bool
	metricsAddr string
	hold        bool
	quiet       bool
}

// replaySummary is printed once the dump is exhausted.
type replaySummary struct {
	Responses int            `json:"responses"`
	Messages  int            `json:"messages"`
	ByName    map[string]int `json:"by_name"`
}

func newReplayCmd(a *app) *cobra.Command {
	opts := replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Decode a chunked dump of peer traffic",
		Long: "Replay reads a capture of one direction of a peer connection, " +
			"as written chunk by chunk, and decodes every response in it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.metricsAddr == "" {
				opts.metricsAddr = a.cfg.Metrics.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.replay(ctx, cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.file, "file", "-", "chunked dump to read (\"-\" is stdin)")
	flags.BoolVar(&opts.connection, "connection", false, "the dump starts with the plaintext connection message")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	flags.BoolVar(&opts.hold, "hold", false, "keep serving metrics after the dump is read, until interrupted")
	flags.BoolVar(&opts.quiet, "quiet", false, "print only the summary")
	return cmd
}

func (a *app) replay(ctx context.Context, cmd *cobra.Command, opts replayOptions) error {
	var in io.Reader = cmd.InOrStdin()
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return errors.Wrap(err, "open dump")
		}
		defer f.Close()
		in = f
	}

	observability.RegisterMetrics()
	if opts.metricsAddr != "" {
		srv, err := a.serveMetrics(opts.metricsAddr)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	r := stream.NewReader(in, a.codec, a.log)
	out := cmd.OutOrStdout()
	if opts.connection {
		conn, err := r.ReadConnection(ctx)
		if err != nil {
			return errors.Wrap(describe(err), "read connection message")
		}
		if !opts.quiet {
			if err := writeJSON(out, conn); err != nil {
				return err
			}
		}
	}

	summary := replaySummary{ByName: map[string]int{}}
	for {
		resp, err := r.ReadResponse(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrapf(describe(err), "response %d", summary.Responses)
		}
		summary.Responses++
		for _, m := range resp.Messages {
			summary.Messages++
			summary.ByName[m.Tag().String()]++
		}
		if !opts.quiet {
			if err := writeJSON(out, renderResponse(resp)); err != nil {
				return err
			}
		}
	}
	a.log.Info().Int("responses", summary.Responses).Int("messages", summary.Messages).Msg("replay finished")
	if err := writeJSON(out, summary); err != nil {
		return err
	}

	if opts.hold && opts.metricsAddr != "" {
		a.log.Info().Str("addr", opts.metricsAddr).Msg("holding metrics endpoint open")
		<-ctx.Done()
	}
	return nil
}

func (a *app) serveMetrics(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "listen for metrics")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	a.log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
	return srv, nil
}
