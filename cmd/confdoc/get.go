package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confdoc/confdoc/codec/jsoncfg"
	"github.com/confdoc/confdoc/edit"
)

func newGetCmd(formatFlag *string) *cobra.Command {
	var showComment bool

	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print the value at a key path as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(args[0], *formatFlag)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			n := edit.Get(doc.Values, path)
			if n == nil {
				return fmt.Errorf("no value at path %q", path)
			}
			if showComment {
				if c, ok := doc.Comments[path]; ok {
					fmt.Fprintf(os.Stdout, "# %s\n", c)
				}
			}
			return jsoncfg.Encode(n, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&showComment, "comment", false, "also print the comment attached to the path, if any")
	return cmd
}
