package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/confdoc/confdoc"
	"github.com/confdoc/confdoc/format"
)

func newConvertCmd(formatFlag *string) *cobra.Command {
	var to string
	var out string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-serialize a config file into another format",
		Long: `Re-serialize a config file into another format. Comments do not survive
conversion; they are read-only metadata attached to the source format's key
paths.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(args[0], *formatFlag)
			if err != nil {
				return err
			}
			tf, err := format.ParseFormat(to)
			if err != nil {
				return err
			}
			d, err := confdoc.Stringify(doc.Values, tf)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(d)
				return err
			}
			return os.WriteFile(out, d, 0644)
		},
	}
	cmd.Flags().StringVar(&to, "to", "yaml", "target format (json|toml|yaml|properties)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
