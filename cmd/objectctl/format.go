package main

import (
	"fmt"

	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/codec/binary"
	"github.com/joshuapare/objectgraph/pkg/codec/json"
	"github.com/joshuapare/objectgraph/pkg/codec/text"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// codecFor resolves one of the three interchangeable node encodings by name.
func codecFor(name string) (codec.Codec, error) {
	switch name {
	case "binary":
		return binary.New(), nil
	case "text":
		return text.New(), nil
	case "json":
		return json.New(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (use: binary, text, json)", name)
	}
}

// loadStream reads path into a file-backed stream positioned at 0.
func loadStream(path string) (stream.Stream, error) {
	s := stream.NewFileStream(path)
	if err := s.LoadFromFile(path); err != nil {
		return nil, err
	}
	s.SetPosition(0)
	return s, nil
}
