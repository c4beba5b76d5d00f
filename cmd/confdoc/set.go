package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confdoc/confdoc/edit"
	"github.com/confdoc/confdoc/ir"
)

func newSetCmd(formatFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Set the value at a key path and rewrite the file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path, value := args[0], args[1], args[2]
			doc, f, err := loadDoc(file, *formatFlag)
			if err != nil {
				return err
			}
			next := edit.Set(doc.Values, path, scalarArg(value))
			if next == doc.Values {
				return fmt.Errorf("path %q not reachable in %s", path, file)
			}
			logger.Debug("set", "file", file, "path", path)
			return writeDoc(file, next, f)
		},
	}
}

func newDelCmd(formatFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "del <file> <path>",
		Short: "Delete the value at a key path and rewrite the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path := args[0], args[1]
			doc, f, err := loadDoc(file, *formatFlag)
			if err != nil {
				return err
			}
			next := edit.Delete(doc.Values, path)
			if next == doc.Values {
				return fmt.Errorf("path %q not found in %s", path, file)
			}
			logger.Debug("del", "file", file, "path", path)
			return writeDoc(file, next, f)
		},
	}
}

func newAppendCmd(formatFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "append <file> <path> [value]",
		Short: "Append an element to the array at a key path",
		Long: `Append an element to the array at a key path and rewrite the file.
When value is omitted, the new element is an empty placeholder cloned from
the shape of the array's last element.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path := args[0], args[1]
			doc, f, err := loadDoc(file, *formatFlag)
			if err != nil {
				return err
			}
			arr := edit.Get(doc.Values, path)
			if arr == nil || arr.Type != ir.ArrayType {
				return fmt.Errorf("no array at path %q in %s", path, file)
			}
			var v *ir.Node
			if len(args) == 3 {
				v = scalarArg(args[2])
			} else {
				var example *ir.Node
				if n := arr.Len(); n > 0 {
					example = arr.Values[n-1]
				}
				v = ir.Default(example)
			}
			next := edit.ArrayInsert(doc.Values, path, arr.Len(), v)
			logger.Debug("append", "file", file, "path", path)
			return writeDoc(file, next, f)
		},
	}
}
