package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/danmuck/p2pcodec/internal/protocol/chunk"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

// decoded pairs a decoded value with the encoder that should reproduce its
// input.
type decoded struct {
	value  any
	encode func() ([]byte, error)
}

type kindFunc func(c *messages.Codec, b []byte) (decoded, error)

var kinds = map[string]kindFunc{
	"response": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeResponse(b)
		return decoded{renderResponse(v), func() ([]byte, error) { return c.EncodeResponse(v) }}, err
	},
	"peer": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodePeerMessage(b)
		if err != nil {
			return decoded{}, err
		}
		return decoded{renderMessage(v), func() ([]byte, error) { return c.EncodePeerMessage(v) }}, nil
	},
	"connection": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeConnection(b)
		return decoded{v, func() ([]byte, error) { return c.EncodeConnection(v) }}, err
	},
	"metadata": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeMetadata(b)
		return decoded{v, func() ([]byte, error) { return c.EncodeMetadata(v) }}, err
	},
	"ack": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeAck(b)
		if err != nil {
			return decoded{}, err
		}
		return decoded{renderAck(v), func() ([]byte, error) { return c.EncodeAck(v) }}, nil
	},
	"header": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeBlockHeader(b)
		return decoded{v, func() ([]byte, error) { return c.EncodeBlockHeader(v) }}, err
	},
	"operation": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := c.DecodeOperation(b)
		return decoded{v, func() ([]byte, error) { return c.EncodeOperation(v) }}, err
	},
	"path": func(c *messages.Codec, b []byte) (decoded, error) {
		v, err := wire.Decode(b, path.Decoder(c.Limits().MaxPathDepth))
		if err != nil {
			return decoded{}, err
		}
		return decoded{renderPath(v), func() ([]byte, error) {
			w := wire.NewWriter(path.Size(v))
			if err := path.Encode(w, v); err != nil {
				return nil, err
			}
			return w.Bytes(), nil
		}}, nil
	},
}

func kindNames() string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func decodeAs(c *messages.Codec, kind string, b []byte) (decoded, error) {
	fn, ok := kinds[strings.ToLower(kind)]
	if !ok {
		return decoded{}, fmt.Errorf("unknown kind %q (want %s)", kind, kindNames())
	}
	return fn(c, b)
}

// inputOptions select where message bytes come from.
type inputOptions struct {
	file string
	// chunk means the input is one framed chunk as captured off the wire.
	chunk bool
}

func (o *inputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "file", "", "read raw bytes from a file instead of a hex argument")
	cmd.Flags().BoolVar(&o.chunk, "chunk", false, "input is a single chunk; check and strip its 2-byte size field")
}

func (o inputOptions) read(cmd *cobra.Command, args []string) ([]byte, error) {
	raw, err := readInput(cmd, args, o.file)
	if err != nil || !o.chunk {
		return raw, err
	}
	c, err := chunk.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse chunk")
	}
	return c.Content(), nil
}

// readInput takes hex from the argument, or raw bytes from file ("-" is
// stdin).
func readInput(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, errors.New("give either a hex argument or --file, not both")
	case file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case file != "":
		b, err := os.ReadFile(file)
		return b, errors.Wrap(err, "read input")
	case len(args) == 1:
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
		return b, errors.Wrap(err, "parse hex input")
	default:
		return nil, errors.New("missing input: pass hex or --file")
	}
}

func describe(err error) error {
	if kind, ok := wire.KindOf(err); ok {
		return errors.Wrapf(err, "%s at offset %d", kind, wire.OffsetOf(err))
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDecodeCmd(a *app) *cobra.Command {
	var kind string
	var in inputOptions
	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode one message and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			d, err := decodeAs(a.codec, kind, raw)
			if err != nil {
				return describe(err)
			}
			a.log.Debug().Str("kind", kind).Int("bytes", len(raw)).Msg("decoded")
			return writeJSON(cmd.OutOrStdout(), d.value)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "response", "message kind: "+kindNames())
	in.bind(cmd)
	return cmd
}

func newRoundtripCmd(a *app) *cobra.Command {
	var kind string
	var in inputOptions
	cmd := &cobra.Command{
		Use:   "roundtrip [hex]",
		Short: "Decode then re-encode and check the bytes match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := in.read(cmd, args)
			if err != nil {
				return err
			}
			d, err := decodeAs(a.codec, kind, raw)
			if err != nil {
				return describe(err)
			}
			out, err := d.encode()
			if err != nil {
				return errors.Wrap(err, "re-encode")
			}
			if !bytes.Equal(raw, out) {
				a.log.Warn().Str("kind", kind).Str("in", hex.EncodeToString(raw)).Str("out", hex.EncodeToString(out)).Msg("round trip mismatch")
				return fmt.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(raw), len(out))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s %d bytes\n", kind, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "response", "message kind: "+kindNames())
	in.bind(cmd)
	return cmd
}
