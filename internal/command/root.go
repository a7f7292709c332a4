package command

import (
	"github.com/naieum/omni/internal/command/serve"
	"github.com/naieum/omni/internal/logginglevel"
	"github.com/naieum/omni/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var debug bool

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "omni",
		Short:         "Caching proxy for MusicBrainz metadata and cover art",
		Version:       version.FullVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logginglevel.Level.SetLevel(zapcore.DebugLevel)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(serve.NewCommand())

	return cmd
}
