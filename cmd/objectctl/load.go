package main

import (
	"fmt"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/serializer"
	"github.com/spf13/cobra"
)

var loadFormat string

func init() {
	cmd := newLoadCmd()
	cmd.Flags().StringVar(&loadFormat, "format", "text", "Stream format: binary, text, json")
	rootCmd.AddCommand(cmd)
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <input>",
		Short: "Restore a stream's scalar fields through fresh descriptors",
		Long: `The load command parses a stream and, for every scalar leaf node,
builds a descriptor matching the node's own RTTI and restores it through
RestoreProperty — exercising the same decode path a real application's
publisher would, without requiring one.

Example:
  objectctl load out.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args)
		},
	}
}

func runLoad(args []string) error {
	path := args[0]
	c, err := codecFor(loadFormat)
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

	var restored []map[string]interface{}
	for _, n := range root.Preorder() {
		if n.Info.Type.Kind == rtti.Object || n.Info.Type.Kind == rtti.Stream || n.Info.Type.Kind.IsFatPointer() {
			continue // no live scalar to restore into
		}
		d, ok := scalarDescriptorFor(n)
		if !ok {
			continue
		}
		if err := e.RestoreProperty(n, d); err != nil {
			printInfo("%s: %v\n", n.IdentifierChain(), err)
			continue
		}
		restored = append(restored, map[string]interface{}{
			"chain": n.IdentifierChain(), "type": n.Info.Type.String(), "value": d.Get(),
		})
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"input": path, "restored": restored})
	}
	for _, r := range restored {
		printInfo("%s: %s = %v\n", r["chain"], r["type"], r["value"])
	}
	if diags := e.Diagnostics(); len(diags) > 0 {
		printInfo("\n%d diagnostic(s)\n", len(diags))
		for _, d := range diags {
			printInfo("  %s: %s (%s)\n", d.Chain, d.Message, d.Kind)
		}
	}
	return nil
}

// scalarDescriptorFor allocates a scratch location matching node's RTTI
// kind and returns a descriptor bound to it, so RestoreProperty has
// somewhere concrete to write without a real application type.
func scalarDescriptorFor(n *ist.Node) (*descriptor.Descriptor, bool) {
	name, tag := n.Info.Name, n.Info.Type
	switch tag.Kind {
	case rtti.Bool:
		var v bool
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Byte:
		var v int8
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.UByte:
		var v uint8
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Short:
		var v int16
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.UShort:
		var v uint16
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Int:
		var v int32
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.UInt:
		var v uint32
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Long:
		var v int64
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.ULong:
		var v uint64
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Float:
		var v float32
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Double:
		var v float64
		return descriptor.FromValue(name, tag, nil, &v), true
	case rtti.Char, rtti.WChar, rtti.DChar:
		var v string
		return descriptor.FromValue(name, tag, nil, &v), true
	default:
		return nil, false
	}
}
