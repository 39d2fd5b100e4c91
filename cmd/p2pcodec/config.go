package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/p2pcodec/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or check config files",
	}

	var kind, output string
	var force bool
	template := &cobra.Command{
		Use:   "template",
		Short: "Print or write a starter config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				text, err := config.Template(kind)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := config.WriteTemplate(output, kind, force); err != nil {
				return err
			}
			a.log.Info().Str("kind", kind).Str("path", output).Msg("wrote config template")
			return nil
		},
	}
	template.Flags().StringVar(&kind, "kind", "default", "template kind: default|strict")
	template.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of stdout")
	template.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validate := &cobra.Command{
		Use:   "validate <path>",
		Short: "Load a config file and report every problem in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(template, validate)
	return cmd
}
