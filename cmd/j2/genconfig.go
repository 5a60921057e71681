package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/j2go/pkg/config"
	"github.com/arthur-debert/j2go/pkg/errors"
)

func newGenConfigCmd() *cobra.Command {
	var (
		effective bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}

			content := config.DefaultConfigContent()
			if effective {
				settings, err := config.Load(cwd, nil)
				if err != nil {
					return err
				}
				data, err := settings.TOML()
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to serialize config")
				}
				content = string(data)
			}

			if write {
				path := filepath.Join(cwd, ".j2go.toml")
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					return errors.Wrapf(err, errors.ErrInternal, "failed to write config to %s", path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, "Print the effective configuration instead of the commented defaults")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write config to .j2go.toml instead of stdout")
	return cmd
}
