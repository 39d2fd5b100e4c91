package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/p2pcodec/internal/protocol/hash"
)

// newChainIDCmd converts between the hex chain id found in node configs and
// the base58check "Net..." form shown in logs and RPC output.
func newChainIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-id <hex|Net...>",
		Short: "Convert a chain id between hex and base58check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := strings.TrimSpace(args[0])
			if strings.HasPrefix(in, "Net") {
				id, err := hash.ParseChainID(in)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(id[:]))
				return err
			}
			id, err := hash.ChainIDFromHex(strings.TrimPrefix(in, "0x"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return err
		},
	}
}
