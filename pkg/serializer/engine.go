// Package serializer implements the engine that orchestrates a publisher,
// an Intermediate Serialization Tree, and a stream: sequential and bulk
// store, sequential/random/callback-driven restore, and format
// conversion.
package serializer

import (
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/registry"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// State is one of the engine's five lifecycle states. Every public entry
// point sets its state for the duration of the call and returns to
// StateIdle when it finishes.
type State int

const (
	StateIdle State = iota
	StateStoringSequential
	StateStoringBulk
	StateLoading
	StateISTOnly
)

func (s State) String() string {
	switch s {
	case StateStoringSequential:
		return "storing_sequential"
	case StateStoringBulk:
		return "storing_bulk"
	case StateLoading:
		return "loading"
	case StateISTOnly:
		return "ist_only"
	default:
		return "idle"
	}
}

// WantDescriptorFunc is fired when a target publisher has no publication
// matching node's name during ISTToPublisher. Returning a non-nil
// descriptor applies it as if it had been found; stop halts recursion
// into node's subtree (siblings still proceed).
type WantDescriptorFunc func(node *ist.Node) (d *descriptor.Descriptor, stop bool)

// WantObjectFunc is fired when a target object-kind slot is nil during
// ISTToPublisher. Returning fromReference true resolves obj via the
// reference registry using node's identifier chain as id instead.
type WantObjectFunc func(node *ist.Node) (obj any, fromReference bool)

// Options configures an Engine. The zero value is a usable engine: no
// callbacks fire (unmatched nodes/objects are simply skipped) and the
// package-level default registry is used.
type Options struct {
	OnWantDescriptor WantDescriptorFunc
	OnWantObject     WantObjectFunc

	// Registry, if non-nil, scopes reference lookups to this instance
	// instead of the package-level default.
	Registry *registry.Registry
}

// Diagnostic records one recoverable issue encountered during a store or
// load run — damage accumulates on nodes and is queryable afterward
// rather than aborting the run.
type Diagnostic struct {
	Chain   string
	Kind    string
	Message string
}

// Engine is a single store/load run's cross-cutting state: the bound
// codec/stream, the IST under construction, and diagnostics accumulated
// along the way. The walk's current node is passed down the recursion
// rather than kept on the Engine. An Engine is not safe for concurrent or
// reentrant use: build a fresh one per run.
type Engine struct {
	opt   Options
	state State

	codec  codec.Codec
	stream stream.Stream

	mustWrite bool
	root      *ist.Node

	diagnostics []Diagnostic
}

// New returns an idle Engine configured by opt.
func New(opt Options) *Engine {
	return &Engine{opt: opt, state: StateIdle}
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// Diagnostics returns every recoverable issue accumulated since the
// engine's construction (or since the last Reset).
func (e *Engine) Diagnostics() []Diagnostic { return e.diagnostics }

// Reset clears the engine's IST and diagnostics and returns it to
// StateIdle, ready for another run.
func (e *Engine) Reset() {
	e.root = nil
	e.diagnostics = nil
	e.state = StateIdle
}

func (e *Engine) diag(node *ist.Node, kind, msg string) {
	chain := ""
	if node != nil {
		chain = node.IdentifierChain()
	}
	e.diagnostics = append(e.diagnostics, Diagnostic{Chain: chain, Kind: kind, Message: msg})
}

func (e *Engine) refRegistry() *registry.Registry {
	if e.opt.Registry != nil {
		return e.opt.Registry
	}
	return registry.Default()
}
