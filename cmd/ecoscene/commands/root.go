package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rl1809/ecoscene/internal/adapter/storage"
	"github.com/rl1809/ecoscene/internal/logging"
)

var (
	logLevel string
	logger   zerolog.Logger
	catalog  *storage.MemoryCatalog
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ecoscene",
		Short:        "Ecoscene marketplace pricing tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(logLevel, "console", os.Stderr)
			if err != nil {
				return err
			}
			catalog = storage.NewMemoryCatalog(storage.Fixtures())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd(), catalogCmd(), stressCmd())
	return root
}
