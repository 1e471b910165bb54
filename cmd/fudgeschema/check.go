package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fudge-schema/internal/diagnostic"
	"fudge-schema/manifest"
)

var errInvalidManifest = errors.New("manifest has errors")

func newCheckCommand(a *app) *cobra.Command {
	var overrides bool

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate a manifest",
		Long: `Validate a manifest and print every diagnostic found. The command fails
when at least one error is reported; warnings do not fail it.

With --overrides the manifest is checked as overrides of Go types, whose
member types come from the Go declarations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := manifest.ModeDeclared
			if overrides {
				mode = manifest.ModeOverrides
			}

			return a.runCheck(cmd.OutOrStdout(), args[0], mode)
		},
	}

	cmd.Flags().BoolVar(&overrides, "overrides", false, "check as an override manifest")

	return cmd
}

func (a *app) runCheck(w io.Writer, path string, mode manifest.Mode) error {
	f, err := manifest.LoadFile(path)
	if err != nil {
		return err
	}

	diags := manifest.Validate(f, mode)
	printDiagnostics(w, diags, !a.cfg.Color)

	if n := diags.Count(diagnostic.SeverityError); n > 0 {
		return fmt.Errorf("%s: %w (%d errors)", path, errInvalidManifest, n)
	}

	fmt.Fprintf(w, "%s: %d types ok, %d warnings\n", path, len(f.Types), diags.Count(diagnostic.SeverityWarning))

	return nil
}

func printDiagnostics(w io.Writer, diags *diagnostic.Report, noColor bool) {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	infoColor := color.New(color.FgCyan)

	if noColor {
		errColor.DisableColor()
		warnColor.DisableColor()
		infoColor.DisableColor()
	}

	for _, d := range diags.Sorted() {
		c := infoColor
		switch d.Severity {
		case diagnostic.SeverityError:
			c = errColor
		case diagnostic.SeverityWarning:
			c = warnColor
		}

		c.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}
