package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// formatEntitiesText formats CLIEntity rows as aligned columns.
func formatEntitiesText(w io.Writer, entities []CLIEntity) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tKIND\tFILE\tLINE")
	for _, e := range entities {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
			e.ID, e.QualifiedName, e.Kind, e.File, e.Line)
	}
	tw.Flush()
}

// formatEntityDetailText formats a single entity with params and children.
func formatEntityDetailText(w io.Writer, detail CLIEntityDetail) {
	e := detail.Entity
	fmt.Fprintf(w, "%s (%s)\n", e.QualifiedName, e.Kind)
	if e.Description != "" {
		fmt.Fprintf(w, "  %s\n", e.Description)
	}
	if len(e.Types) > 0 {
		fmt.Fprintf(w, "Types: %s\n", strings.Join(e.Types, " | "))
	}
	if e.Default != "" {
		fmt.Fprintf(w, "Default: %s\n", e.Default)
	}
	if e.See != "" {
		fmt.Fprintf(w, "See: %s\n", e.See)
	}
	if e.File != "" {
		fmt.Fprintf(w, "Defined: %s:%d\n", e.File, e.Line)
	}

	if len(detail.Params) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PARAM\tTYPES\tDESCRIPTION")
		for _, p := range detail.Params {
			name := p.Name
			if p.IsReturn {
				name = "(return)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(p.Types, "|"), p.Description)
		}
		tw.Flush()
	}

	if len(detail.Children) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Children:")
		formatEntitiesText(w, detail.Children)
	}
}

// formatPendingText formats unresolved names, one per line.
func formatPendingText(w io.Writer, pending CLIPending) {
	if len(pending.Names) == 0 {
		fmt.Fprintln(w, "No unresolved references")
		return
	}
	for _, name := range pending.Names {
		fmt.Fprintln(w, name)
	}
}

// formatSummaryText formats CLISummary as readable text.
func formatSummaryText(w io.Writer, summary CLISummary) {
	fmt.Fprintln(w, "Index Summary")
	fmt.Fprintln(w, "=============")
	if summary.SourceDir != "" {
		fmt.Fprintf(w, "Source: %s\n", summary.SourceDir)
	}
	if summary.BuiltAt != "" {
		fmt.Fprintf(w, "Built: %s\n", summary.BuiltAt)
	}
	fmt.Fprintf(w, "Entities: %d\n", summary.Total)

	kinds := make([]string, 0, len(summary.Counts))
	for kind := range summary.Counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %s: %d\n", kind, summary.Counts[kind])
	}

	if len(summary.PendingNames) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unresolved references:")
		for _, name := range summary.PendingNames {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case []CLIEntity:
		formatEntitiesText(w, v)
	case CLIEntityDetail:
		formatEntityDetailText(w, v)
	case CLIPending:
		formatPendingText(w, v)
	case CLISummary:
		formatSummaryText(w, v)
	case nil:
		// No output for nil results.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
