// Package cmd — specmap command.
// Exports the input kinds of every block in a toolbox as a JSON spec map.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adroitwhiz/scratch-vm/core/fetch"
	"github.com/adroitwhiz/scratch-vm/core/markup"
	"github.com/adroitwhiz/scratch-vm/core/output"
	"github.com/adroitwhiz/scratch-vm/core/render"
	"github.com/adroitwhiz/scratch-vm/core/specmap"
)

const specMapExtension = ".specmap.json"

var specmapCmd = &cobra.Command{
	Use:   "specmap <file|url|->",
	Short: "Export a spec map from a block toolbox",
	Long: `Specmap reads toolbox markup (<category> elements holding <block> elements)
and writes, for every block opcode, its input and field names mapped to the
kind of value they take: a shadow block type, boolean, substack or field.

Examples:
  mutadapt specmap toolbox.xml
  mutadapt specmap toolbox.xml --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runSpecmap,
}

func init() {
	rootCmd.AddCommand(specmapCmd)

	specmapCmd.Flags().StringVar(&flagSyntax, "syntax", "xml", "Markup syntax: xml (strict) or html (lenient, lowercased names)")
	specmapCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: standard output)")
}

func runSpecmap(cmd *cobra.Command, args []string) error {
	src := args[0]

	parser, err := markup.ParserFor(cfg.Syntax)
	if err != nil {
		return err
	}

	text, err := fetch.Load(cmd.Context(), src, fetch.New(cfg.FetchTimeout), cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	root, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	specMap, err := specmap.New(logger).Build(root)
	if err != nil {
		return err
	}
	logger.Debugf("exported %d blocks from %s", len(specMap), src)

	data, err := render.MarshalIndent(specMap, "\t")
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.OutputDir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(src, data, specMapExtension)
	if err != nil {
		return err
	}
	if path != output.StdoutPath {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}
