// Command confdoc inspects and edits configuration files by key path,
// preserving each file's own format on write.
package main

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Level:           charmlog.InfoLevel,
})

// Execute runs the confdoc CLI.
func Execute() error {
	var verbose bool
	var formatFlag string

	root := &cobra.Command{
		Use:          "confdoc",
		Short:        "confdoc edits JSON, TOML, YAML, and properties config files by key path",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "force input format (json|toml|yaml|properties)")

	root.AddCommand(newGetCmd(&formatFlag))
	root.AddCommand(newSetCmd(&formatFlag))
	root.AddCommand(newDelCmd(&formatFlag))
	root.AddCommand(newAppendCmd(&formatFlag))
	root.AddCommand(newConvertCmd(&formatFlag))
	root.AddCommand(newPatchCmd(&formatFlag))
	root.AddCommand(newDiffCmd(&formatFlag))

	return root.ExecuteContext(context.Background())
}
