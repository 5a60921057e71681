package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/j2go/pkg/config"
	"github.com/arthur-debert/j2go/pkg/docs"
	"github.com/arthur-debert/j2go/pkg/errors"
)

func newDocsCmd() *cobra.Command {
	var customFilters bool

	cmd := &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		Long:  MsgDocsLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}

			overrides := map[string]interface{}{}
			if customFilters {
				overrides["extensions.enabled"] = true
			}

			settings, err := config.Load(cwd, overrides)
			if err != nil {
				return err
			}

			filterReg, testReg, err := buildRegistries(cwd, settings)
			if err != nil {
				return err
			}

			reference := docs.FilterReference(filterReg, testReg)
			fmt.Fprint(cmd.OutOrStdout(), docs.RenderForTerminal(reference, os.Stdout))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&customFilters, "customs", "C", false, MsgFlagCustoms)
	return cmd
}
