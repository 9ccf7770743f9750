// Package main provides the CLI entry point for redline.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/redline"
	"github.com/tsawler/redline/changes"
	"github.com/tsawler/redline/ocr"
)

var (
	outputPath     string
	jsonOutput     bool
	pretty         bool
	useOCR         bool
	threshold      float64
	imageThreshold float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "redline [original] [revised]",
		Short: "Detect changes between two document versions",
		Long: `redline compares two versions of a document (DOCX, XLSX, PDF, or HTML)
and reports text, formatting, table, image, and structural changes.`,
		Args: cobra.ExactArgs(2),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full result as JSON")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().Float64Var(&threshold, "threshold", 0.8, "Text similarity threshold in [0,1]")
	rootCmd.Flags().Float64Var(&imageThreshold, "image-threshold", 0.95, "Image similarity threshold in [0,1]")
	rootCmd.Flags().BoolVar(&useOCR, "ocr", false, "Recognize text in changed images (requires a build with -tags ocr)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	comparator := redline.Open(args[0], args[1]).
		Threshold(threshold).
		ImageThreshold(imageThreshold)

	if useOCR {
		client, err := ocr.New()
		if err != nil {
			return fmt.Errorf("enabling OCR: %w", err)
		}
		defer client.Close()
		comparator = comparator.WithRecognizer(client)
	}

	result, warnings, err := comparator.Compare()
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	var out []byte
	if jsonOutput {
		if out, err = encodeJSON(result); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	} else {
		out = []byte(renderText(result))
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Print(string(out))
	return nil
}

func encodeJSON(result *changes.Result) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// renderText writes a human-readable report, one line per change.
func renderText(result *changes.Result) string {
	var out string

	section := func(title string, recs []changes.Record) {
		if len(recs) == 0 {
			return
		}
		out += title + ":\n"
		for _, rec := range recs {
			out += "  " + renderRecord(rec) + "\n"
		}
	}

	section("Structural changes", result.StructuralChanges)
	section("Text changes", result.TextChanges)
	section("Formatting changes", result.FormattingChanges)
	section("Table changes", result.TableChanges)
	section("Image changes", result.ImageChanges)

	out += fmt.Sprintf("Total changes: %d\n", result.Summary.TotalChanges)
	return out
}

func renderRecord(rec changes.Record) string {
	line := fmt.Sprintf("%s: %s", rec.Location, rec.Type)
	switch {
	case rec.Type == changes.Modified && rec.Before != nil && rec.After != nil:
		line += fmt.Sprintf(" (%q -> %q)", *rec.Before, *rec.After)
	case rec.Type == changes.Added && rec.After != nil:
		line += fmt.Sprintf(" (%q)", *rec.After)
	case rec.Type == changes.Deleted && rec.Before != nil:
		line += fmt.Sprintf(" (%q)", *rec.Before)
	case rec.Detail != "":
		line += " (" + rec.Detail + ")"
	}
	if len(rec.Fields) > 0 {
		for _, f := range rec.Fields {
			line += fmt.Sprintf(" [%s: %s -> %s]", f.Name, f.Before, f.After)
		}
	}
	return line
}
