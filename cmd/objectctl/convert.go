package main

import (
	"fmt"

	"github.com/joshuapare/objectgraph/pkg/serializer"
	"github.com/joshuapare/objectgraph/pkg/stream"
	"github.com/spf13/cobra"
)

var (
	convertFrom string
	convertTo   string
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVar(&convertFrom, "from", "text", "Source format: binary, text, json")
	cmd.Flags().StringVar(&convertTo, "to", "text", "Destination format: binary, text, json")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a serialization stream between formats",
		Long: `The convert command parses a stream into its Intermediate Serialization
Tree and re-emits it in another codec, without touching any live object
graph.

Example:
  objectctl convert dump.txt dump.json --from text --to json
  objectctl convert dump.json dump.bin --from json --to binary`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
}

func runConvert(args []string) error {
	inPath, outPath := args[0], args[1]

	fromCodec, err := codecFor(convertFrom)
	if err != nil {
		return err
	}
	toCodec, err := codecFor(convertTo)
	if err != nil {
		return err
	}

	in, err := loadStream(inPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	e := serializer.New(serializer.Options{})
	root, err := e.StreamToIST(in, fromCodec)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inPath, err)
	}
	if root == nil {
		return fmt.Errorf("%s contains no nodes", inPath)
	}

	out := stream.NewFileStream(outPath)
	if err := e.ISTToStream(root, out, toCodec); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err := out.SaveToFile(outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	nodeCount := len(root.Preorder())
	damaged := countDamaged(root)

	if jsonOut {
		return printJSON(map[string]interface{}{
			"input": inPath, "output": outPath,
			"from": convertFrom, "to": convertTo,
			"nodes": nodeCount, "damaged": damaged,
		})
	}
	printInfo("converted %s (%s) -> %s (%s): %d nodes", inPath, convertFrom, outPath, convertTo, nodeCount)
	if damaged > 0 {
		printInfo(", %d damaged", damaged)
	}
	printInfo("\n")
	return nil
}
