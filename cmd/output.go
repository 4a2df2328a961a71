package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "md"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// decodeInput decodes JSON for *.json files and YAML otherwise. Unknown
// fields are rejected so misspelled sections are not silently ignored.
func decodeInput(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// loadInput reads and decodes path into v, mapping failures to exitInput.
func loadInput(cmd *cobra.Command, path string, v any) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return exitError(exitInput, "failed to read %s: %v", path, err)
	}
	if err := decodeInput(path, data, v); err != nil {
		return exitError(exitInput, "failed to parse %s: %v", path, err)
	}
	return nil
}

// writeOutput encodes v in the selected format, or calls markdown for md,
// and writes it to --out or stdout.
func (c *cli) writeOutput(cmd *cobra.Command, v any, markdown func() string) error {
	var data []byte
	switch c.flags.format {
	case formatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return exitError(exitOutput, "failed to marshal JSON: %v", err)
		}
		data = append(b, '\n')
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return exitError(exitOutput, "failed to marshal YAML: %v", err)
		}
		data = b
	case formatMarkdown:
		data = []byte(markdown())
	default:
		return exitError(exitUsage, "unknown format: %s", c.flags.format)
	}

	if c.flags.out != "" {
		if err := os.WriteFile(c.flags.out, data, 0o644); err != nil {
			return exitError(exitOutput, "failed to write output: %v", err)
		}
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return exitError(exitOutput, "failed to write output: %v", err)
	}
	return nil
}

func joinSections(parts []string) string {
	return strings.Join(parts, "\n---\n\n")
}

func fmtScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
