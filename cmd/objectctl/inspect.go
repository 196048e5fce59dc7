package main

import (
	"fmt"

	"github.com/joshuapare/objectgraph/pkg/serializer"
	"github.com/spf13/cobra"
)

var inspectFormat string

func init() {
	cmd := newInspectCmd()
	cmd.Flags().StringVar(&inspectFormat, "format", "text", "Stream format: binary, text, json")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print a stream's Intermediate Serialization Tree",
		Long: `The inspect command parses a stream and prints every node in preorder,
indented by level, with its type and decoded value.

Example:
  objectctl inspect dump.txt
  objectctl inspect dump.bin --format binary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(args []string) error {
	path := args[0]
	c, err := codecFor(inspectFormat)
	if err != nil {
		return err
	}

	s, err := loadStream(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	e := serializer.New(serializer.Options{})
	root, err := e.StreamToIST(s, c)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if root == nil {
		printInfo("%s: empty stream\n", path)
		return nil
	}

	if jsonOut {
		type nodeOut struct {
			Chain     string `json:"chain"`
			Level     uint32 `json:"level"`
			Type      string `json:"type"`
			Value     string `json:"value"`
			IsDamaged bool   `json:"damaged"`
		}
		var nodes []nodeOut
		for _, n := range root.Preorder() {
			nodes = append(nodes, nodeOut{
				Chain: n.IdentifierChain(), Level: n.Info.Level,
				Type: n.Info.Type.String(), Value: describeValue(n), IsDamaged: n.Info.IsDamaged,
			})
		}
		return printJSON(map[string]interface{}{"input": path, "nodes": nodes})
	}

	printTree(root)
	if damaged := countDamaged(root); damaged > 0 {
		printInfo("\n%d damaged node(s)\n", damaged)
	}
	return nil
}
