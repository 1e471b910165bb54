package typegraph

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fudge-schema/naming"
)

// Cache holds the resolved nodes of one serializer configuration. Create one
// per configuration; caches never share nodes. A Cache is safe for
// concurrent use.
type Cache struct {
	source      Source
	logger      *zap.Logger
	parallelism int

	mu    sync.RWMutex // guards nodes
	nodes map[key]*Node

	build sync.Mutex // serializes construction of new nodes
}

type key struct {
	typ        Type
	convention naming.Convention
}

// Entry is a published node in a Cache snapshot.
type Entry struct {
	Type       Type
	Convention naming.Convention // requested convention the node is keyed by
	Node       *Node
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report builds. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithParallelism limits the number of roots Warm resolves at once.
// Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// New creates an empty Cache over source.
func New(source Source, opts ...Option) *Cache {
	c := &Cache{
		source:      source,
		logger:      zap.NewNop(),
		parallelism: runtime.GOMAXPROCS(0),
		nodes:       make(map[key]*Node),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolve returns the node of t under convention, building it and every node
// it depends on when needed. Repeated calls with the same type and
// convention return the same *Node.
//
// Errors are *ResolveError values wrapping ErrConfiguration or
// ErrUnsupportedShape (or a source-specific error). A failed call leaves
// no entry behind, so the same key may be retried.
func (c *Cache) Resolve(t Type, convention naming.Convention) (*Node, error) {
	if t == nil {
		return nil, &ResolveError{Path: "<nil>", Err: fmt.Errorf("%w: nil type", ErrUnsupportedShape)}
	}

	if err := convention.Validate(); err != nil {
		return nil, &ResolveError{Type: t, Path: t.String(), Err: configError(err)}
	}

	canonical := c.source.Canonical(t)
	if canonical == nil {
		return nil, &ResolveError{Type: t, Path: t.String(), Err: fmt.Errorf("%w: no canonical form", ErrUnsupportedShape)}
	}

	k := key{typ: canonical, convention: convention}
	if n, ok := c.lookup(k); ok {
		return n, nil
	}

	c.build.Lock()
	defer c.build.Unlock()

	// published by another goroutine while we waited for the build lock
	if n, ok := c.lookup(k); ok {
		return n, nil
	}

	b := newBuilder(c)

	n, err := b.resolve(canonical, convention, NewTypePath(canonical.String()))
	if err != nil {
		c.logger.Debug("discarding pending type nodes",
			zap.Stringer("type", canonical),
			zap.Stringer("convention", convention),
			zap.Int("pending", len(b.order)),
			zap.Error(err),
		)

		return nil, err
	}

	c.publish(b)

	return n, nil
}

// Warm resolves every type in types under convention, several at a time.
// It returns the first error; roots not yet started when ctx is done are
// skipped.
func (c *Cache) Warm(ctx context.Context, convention naming.Convention, types ...Type) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)

	for _, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := c.Resolve(t, convention)

			return err
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Debug("cache warm-up failed", zap.Int("roots", len(types)), zap.Error(err))
	}

	return err
}

// Len returns the number of published nodes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.nodes)
}

// Entries returns the published nodes ordered by type name, then convention.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.nodes))
	for k, n := range c.nodes {
		out = append(out, Entry{Type: k.typ, Convention: k.convention, Node: n})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Type.String(), out[j].Type.String()
		if ti != tj {
			return ti < tj
		}

		return out[i].Convention < out[j].Convention
	})

	return out
}

func (c *Cache) lookup(k key) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.nodes[k]

	return n, ok
}

// publish marks every node of a successful build complete and makes them
// visible to other goroutines in one step.
func (c *Cache) publish(b *builder) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range b.order {
		n := b.pending[k]
		n.complete = true
		c.nodes[k] = n
	}

	c.logger.Debug("published type nodes",
		zap.Int("built", len(b.order)),
		zap.Int("total", len(c.nodes)),
	)
}
