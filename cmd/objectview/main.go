// Command objectview is an interactive terminal browser for a serialized
// object-graph stream: a tree pane over the parsed Intermediate
// Serialization Tree and a detail pane for the selected node.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/codec/binary"
	"github.com/joshuapare/objectgraph/pkg/codec/json"
	"github.com/joshuapare/objectgraph/pkg/codec/text"
	"github.com/joshuapare/objectgraph/pkg/serializer"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

func main() {
	args := os.Args[1:]
	format := "text"
	var path string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				i++
				format = args[i]
			}
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		default:
			path = args[i]
		}
	}

	if path == "" {
		printUsage()
		os.Exit(1)
	}

	root, err := loadTree(path, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "objectview: %v\n", err)
		os.Exit(1)
	}

	m := NewModel(path, root)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "objectview: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: objectview [--format binary|text|json] <stream-file>")
}

func resolveCodec(format string) codec.Codec {
	switch format {
	case "binary":
		return binary.New()
	case "text":
		return text.New()
	case "json":
		return json.New()
	default:
		return nil
	}
}

func loadTree(path, format string) (*nodeView, error) {
	c := resolveCodec(format)
	if c == nil {
		return nil, fmt.Errorf("unknown format %q (use binary, text, or json)", format)
	}

	s := stream.NewFileStream(path)
	if err := s.LoadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.SetPosition(0)

	e := serializer.New(serializer.Options{})
	root, err := e.StreamToIST(s, c)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%s contains no nodes", path)
	}
	return buildView(root), nil
}
