package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/confdoc/confdoc"
	"github.com/confdoc/confdoc/format"
)

func newDiffCmd(formatFlag *string) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Semantically diff two config files",
		Long: `Semantically diff two config files, which may be in different formats:
both are normalized to a common rendering and compared line by line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			af, err := fileFormat(args[0], *formatFlag)
			if err != nil {
				return err
			}
			common := af
			if as != "" {
				if common, err = format.ParseFormat(as); err != nil {
					return err
				}
			}
			ra, err := render(args[0], *formatFlag, common)
			if err != nil {
				return err
			}
			rb, err := render(args[1], *formatFlag, common)
			if err != nil {
				return err
			}
			diffs := confdoc.Diff(ra, rb)
			printDiffs(diffs)
			for _, d := range diffs {
				if d.Type != diffpatch.DiffEqual {
					os.Exit(1)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "normalize both files to this format before diffing")
	return cmd
}

func render(path, override string, f format.Format) (string, error) {
	doc, _, err := loadDoc(path, override)
	if err != nil {
		return "", err
	}
	d, err := confdoc.Stringify(doc.Values, f)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func printDiffs(diffs []diffpatch.Diff) {
	useColor := isatty.IsTerminal(os.Stdout.Fd())
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	for _, d := range diffs {
		for _, ln := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffpatch.DiffDelete:
				if useColor {
					red.Fprintf(os.Stdout, "-%s\n", ln)
				} else {
					fmt.Fprintf(os.Stdout, "-%s\n", ln)
				}
			case diffpatch.DiffInsert:
				if useColor {
					green.Fprintf(os.Stdout, "+%s\n", ln)
				} else {
					fmt.Fprintf(os.Stdout, "+%s\n", ln)
				}
			default:
				fmt.Fprintf(os.Stdout, " %s\n", ln)
			}
		}
	}
}
