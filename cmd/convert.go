// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// load → parse → adapt → render → write.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adroitwhiz/scratch-vm/core"
	"github.com/adroitwhiz/scratch-vm/core/fetch"
	"github.com/adroitwhiz/scratch-vm/core/markup"
	"github.com/adroitwhiz/scratch-vm/core/mutation"
	"github.com/adroitwhiz/scratch-vm/core/output"
	"github.com/adroitwhiz/scratch-vm/core/render"
)

// Flag variables.
var (
	flagSyntax    string
	flagFormat    string
	flagQuery     string
	flagOutputDir string
	flagLegacy    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|url|->",
	Short: "Convert mutation markup to its runtime object",
	Long: `Convert reads mutation markup, converts it into the object tree used by the
block runtime and writes it in the selected format (JSON, YAML, Markdown, PDF,
or XML for a round trip).

Examples:
  mutadapt convert mutation.xml
  mutadapt convert - --format yaml < mutation.xml
  mutadapt convert https://example.com/mutation.xml --query children.0.blockInfo
  mutadapt convert dom.html --syntax html --format markdown --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagSyntax, "syntax", "xml", "Markup syntax: xml (strict) or html (lenient, lowercased names)")
	convertCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format: json, yaml, markdown, pdf or xml")
	convertCmd.Flags().StringVar(&flagQuery, "query", "", "Print only the value at this JSON path (gjson syntax)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: standard output)")
	convertCmd.Flags().BoolVar(&flagLegacy, "legacy", false, "Convert through the deprecated text entry point")
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := args[0]

	parser, err := markup.ParserFor(cfg.Syntax)
	if err != nil {
		return err
	}
	renderer, err := selectRenderer(cfg.Format)
	if err != nil {
		return err
	}
	if flagQuery != "" {
		// Queries run against the JSON record.
		renderer = render.NewJSONRenderer()
	}

	adapter := mutation.New(
		mutation.WithLogger(logger),
		mutation.WithParser(parser),
	)

	text, err := fetch.Load(cmd.Context(), src, fetch.New(cfg.FetchTimeout), cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	obj, err := adapt(adapter, parser, text)
	if err != nil {
		return err
	}
	logger.WithField("tag", obj.TagName).Debugf("converted %s", src)

	data, err := renderer.Render(obj)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if flagQuery != "" {
		value, err := render.Query(data, flagQuery)
		if err != nil {
			return err
		}
		data = []byte(value + "\n")
	}

	writer, err := output.New(cfg.OutputDir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(src, data, renderer.Extension())
	if err != nil {
		return err
	}
	if path != output.StdoutPath {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}

// adapt parses then converts, or hands the raw text to the deprecated text
// entry point when --legacy is set.
func adapt(adapter core.Adapter, parser markup.Parser, text string) (*mutation.Object, error) {
	if flagLegacy {
		obj, err := adapter.FromText(text)
		if err != nil {
			return nil, fmt.Errorf("adapt: %w", err)
		}
		return obj, nil
	}

	node, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	obj, err := adapter.FromNode(node)
	if err != nil {
		return nil, fmt.Errorf("adapt: %w", err)
	}
	return obj, nil
}

// selectRenderer creates the Renderer for a format name.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case "json":
		return render.NewJSONRenderer(), nil
	case "yaml":
		return render.NewYAMLRenderer(), nil
	case "markdown":
		return render.NewMarkdownRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	case "xml":
		return render.NewXMLRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
