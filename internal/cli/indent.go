package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pylex/pkg/config"
	"github.com/yaklabco/pylex/pkg/document"
	"github.com/yaklabco/pylex/pkg/fsutil"
	"github.com/yaklabco/pylex/pkg/indent"
	"github.com/yaklabco/pylex/pkg/syntax"
)

type indentFlags struct {
	line    int
	col     int
	zones   []string
	compact bool
}

// indentOutput is the JSON document printed by the indent command.
type indentOutput struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Prefix string `json:"prefix"`
	Indent string `json:"indent"`
	Mode   string `json:"mode"`
	Level  int    `json:"level"`
}

func newIndentCommand() *cobra.Command {
	var cfg config.Config
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent FILE",
		Short: "Print the text a line break would insert",
		Long: `Compute the continuation prefix and indentation for a line break at a
cursor position and print them as JSON. FILE may be "-" to read standard input.

Lines and columns are 1-based; columns count bytes, not characters. Column 0
places the cursor at the end of the line, and the default line is the last
non-blank one. Each --zone START-END marks the byte columns START through END
of the cursor line as a region where inference is disabled.

Examples:
  pylex indent app.py --line 12 --col 30
  pylex indent app.py --line 3 --zone 5-20
  printf 'if x:' | pylex indent -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndent(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", 0, "1-based line of the cursor (0 = last non-blank line)")
	cmd.Flags().IntVar(&flags.col, "col", 0, "1-based byte column of the cursor (0 = end of line)")
	cmd.Flags().StringSliceVar(&flags.zones, "zone", nil, "disabled byte column range START-END on the cursor line")
	cmd.Flags().IntVar(&cfg.Indent.Width, "indent-width", 0, "indent stop width (default from config)")
	cmd.Flags().BoolVar(&cfg.Indent.UseTabs, "tabs", false, "indent with tabs")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print compact JSON")

	return cmd
}

func runIndent(cmd *cobra.Command, path string, cliCfg *config.Config, flags *indentFlags) error {
	zones, err := parseZones(flags.zones)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.line < 0 || flags.col < 0 {
		return fmt.Errorf("%w: line and column must not be negative", ErrUsage)
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	content, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	doc := document.NewFromText(string(content), cfg.DocumentOptions())

	line := lastCodeLine(doc)
	if flags.line > 0 {
		line = flags.line - 1
	}
	if line >= doc.Len() {
		return fmt.Errorf("%w: line %d is past the end of %s (%d lines)", ErrUsage, flags.line, path, doc.Len())
	}

	col := len(doc.Text(line))
	if flags.col > 0 {
		col = min(flags.col-1, col)
	}

	doc.SetDisabledZones(line, zones)
	res := doc.InferIndent(line, col)

	out := indentOutput{
		Line:   line + 1,
		Column: col + 1,
		Prefix: res.Prefix,
		Indent: res.Indent,
		Mode:   doc.State(line).Mode.String(),
		Level:  doc.Level(line),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if !flags.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// lastCodeLine returns the index of the last non-blank line, or 0.
func lastCodeLine(doc *document.Document) int {
	for i := doc.Len() - 1; i > 0; i-- {
		if !syntax.IsBlank(doc.Text(i)) {
			return i
		}
	}
	return 0
}

// readSource reads path, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, _, err := fsutil.ReadFile(commandContext(cmd), path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// parseZones converts START-END column ranges into half-open byte zones.
func parseZones(specs []string) ([]indent.Zone, error) {
	zones := make([]indent.Zone, 0, len(specs))
	for _, spec := range specs {
		lo, hi, ok := strings.Cut(spec, "-")
		if !ok {
			return nil, fmt.Errorf("zone %q: want START-END", spec)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", spec, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", spec, err)
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("zone %q: want 1 <= START <= END", spec)
		}
		zones = append(zones, indent.Zone{Start: start - 1, End: end})
	}
	return zones, nil
}
