package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/confdoc/confdoc"
)

func newPatchCmd(formatFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "patch <file> <patch.json>",
		Short: "Apply a JSON merge patch to a config file of any format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			doc, f, err := loadDoc(file, *formatFlag)
			if err != nil {
				return err
			}
			patch, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			next, err := confdoc.MergePatch(doc.Values, patch)
			if err != nil {
				return err
			}
			logger.Debug("patch", "file", file, "patch", args[1])
			return writeDoc(file, next, f)
		},
	}
}
