package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/publisher"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/serializer"
	"github.com/joshuapare/objectgraph/pkg/stream"
	"github.com/spf13/cobra"
)

var (
	storeFormat string
	storeRoot   string
	storeFields []string
)

func init() {
	cmd := newStoreCmd()
	cmd.Flags().StringVar(&storeFormat, "format", "text", "Stream format: binary, text, json")
	cmd.Flags().StringVar(&storeRoot, "root", "object", "Root node name")
	cmd.Flags().StringArrayVar(&storeFields, "field", nil,
		"A scalar field as name:kind=value, repeatable (kinds: bool, byte, ubyte, short, ushort, int, uint, long, ulong, float, double, char)")
	rootCmd.AddCommand(cmd)
}

func newStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "store <output>",
		Short: "Publish an ad-hoc record of scalar fields to a stream",
		Long: `The store command builds a publisher out of the scalar fields given by
repeated --field flags and runs it through the serializer's sequential
store path, demonstrating the publisher -> IST -> stream pipeline without
requiring a Go program of your own.

Example:
  objectctl store out.txt --field count:uint=7 --field name:char="hello world"
  objectctl store out.bin --format binary --root widget --field x:float=1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(args)
		},
	}
}

func runStore(args []string) error {
	outPath := args[0]
	c, err := codecFor(storeFormat)
	if err != nil {
		return err
	}

	record := publisher.NewCollector(nil)
	for _, raw := range storeFields {
		d, err := parseFieldFlag(raw)
		if err != nil {
			return err
		}
		record.Add(d)
	}

	s := stream.NewFileStream(outPath)
	e := serializer.New(serializer.Options{})
	root, err := e.PublisherToStream(storeRoot, record, s, c)
	if err != nil {
		return fmt.Errorf("failed to store: %w", err)
	}
	if err := s.SaveToFile(outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"output": outPath, "format": storeFormat, "root": storeRoot,
			"fields": record.PublicationCount(),
		})
	}
	printInfo("stored %d field(s) under %q to %s (%s)\n", len(root.Children), storeRoot, outPath, storeFormat)
	return nil
}

// parseFieldFlag parses "name:kind=value" into a scalar descriptor backed
// by a freshly allocated, boxed Go value of the matching type.
func parseFieldFlag(raw string) (*descriptor.Descriptor, error) {
	nameAndRest, value, ok := strings.Cut(raw, "=")
	if !ok {
		return nil, fmt.Errorf("--field %q: expected name:kind=value", raw)
	}
	name, kindName, ok := strings.Cut(nameAndRest, ":")
	if !ok {
		return nil, fmt.Errorf("--field %q: expected name:kind=value", raw)
	}

	switch kindName {
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Bool}, nil, &v), nil
	case "byte":
		n, err := strconv.ParseInt(value, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := int8(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Byte}, nil, &v), nil
	case "ubyte":
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := uint8(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.UByte}, nil, &v), nil
	case "short":
		n, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := int16(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Short}, nil, &v), nil
	case "ushort":
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := uint16(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.UShort}, nil, &v), nil
	case "int":
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := int32(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Int}, nil, &v), nil
	case "uint":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := uint32(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.UInt}, nil, &v), nil
	case "long":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Long}, nil, &n), nil
	case "ulong":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.ULong}, nil, &n), nil
	case "float":
		n, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		v := float32(n)
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Float}, nil, &v), nil
	case "double":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("--field %s: %w", name, err)
		}
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Double}, nil, &n), nil
	case "char":
		v := value
		return descriptor.FromValue(name, rtti.Tag{Kind: rtti.Char, IsArray: true}, nil, &v), nil
	default:
		return nil, fmt.Errorf("--field %s: unknown kind %q", name, kindName)
	}
}
