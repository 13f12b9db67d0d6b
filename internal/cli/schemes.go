package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yaklabco/pylex/internal/ui/pretty"
	"github.com/yaklabco/pylex/pkg/config"
	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/scheme"
)

// previewSource is the line rendered by schemes --preview.
const previewSource = `def greet(name="world"):  # say hi`

type schemesFlags struct {
	format  string
	preview bool
}

// schemeEntry is one element of the JSON listing.
type schemeEntry struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func newSchemesCommand() *cobra.Command {
	flags := &schemesFlags{}

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List available color schemes",
		Long: `List the color schemes that can be used with --scheme or the
color_scheme configuration key. The active scheme is marked with '*'.

Examples:
  pylex schemes                  # List scheme names
  pylex schemes --preview        # Render a sample line in every scheme
  pylex schemes --format json    # Output as JSON`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchemes(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "render a sample line in each scheme")

	return cmd
}

func runSchemes(cmd *cobra.Command, flags *schemesFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	names := scheme.Names()
	out := cmd.OutOrStdout()

	if flags.format == "json" {
		entries := make([]schemeEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, schemeEntry{Name: name, Active: name == cfg.ColorScheme})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode schemes: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	var cache *scheme.Cache
	var spansDoc *document.Document
	if flags.preview {
		if cache, err = scheme.NewCache(cfg.ColorScheme); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		spansDoc = document.NewFromText(previewSource, cfg.DocumentOptions())
	}

	nameWidth := 0
	for _, name := range names {
		nameWidth = max(nameWidth, runewidth.StringWidth(name))
	}

	var sb strings.Builder
	for _, name := range names {
		marker := "  "
		label := name
		if name == cfg.ColorScheme {
			marker = "* "
			label = styles.Bold.Render(name)
		}
		sb.WriteString(marker)
		sb.WriteString(label)

		if cache != nil {
			if err := cache.SetScheme(name); err != nil {
				return fmt.Errorf("switch scheme: %w", err)
			}
			sb.WriteString(strings.Repeat(" ", nameWidth-runewidth.StringWidth(name)+2))
			sb.WriteString(cache.Render(spansDoc.Text(0), spansDoc.Spans(0)))
		}
		sb.WriteString("\n")
	}

	if _, err := fmt.Fprint(out, sb.String()); err != nil {
		return fmt.Errorf("write schemes: %w", err)
	}
	return nil
}
