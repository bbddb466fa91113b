// Package commands implements the bcdump command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/Akron/bytecursor-go/internal/logger"
)

// Version is injected at build time.
var Version = "dev"

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "bcdump",
		Short: "Decode little-endian binary data with a field layout",
		Long: `bcdump reads a binary file and decodes it field by field according to a
layout: fixed-width integers and floats, LEB128 varints, 128-bit decimals,
raw byte runs and StreamVByte runs.

Use "bcdump [command] --help" for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			logger.InitWithWriter(cmd.ErrOrStderr(), "", "")
			if err := logger.Init(logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cfg.Log.Output,
			}); err != nil {
				return err
			}
			logger.Debug("configuration loaded", "file", cfg.File, "level", cfg.Log.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")

	root.AddCommand(newDecodeCmd())
	root.AddCommand(newVarintCmd())
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// Execute runs the command line against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
