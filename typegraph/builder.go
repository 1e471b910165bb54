package typegraph

import (
	"fmt"

	"go.uber.org/zap"

	"fudge-schema/naming"
)

// builder performs one top-level build. Nodes it creates stay in pending
// until the cache publishes them; a failed build simply drops the builder.
type builder struct {
	cache   *Cache
	source  Source
	pending map[key]*Node
	order   []key
}

func newBuilder(c *Cache) *builder {
	return &builder{
		cache:   c,
		source:  c.source,
		pending: make(map[key]*Node),
	}
}

// resolve returns the node of t, registering a pending node before
// classifying t so that cycles back to t get the same node.
func (b *builder) resolve(t Type, convention naming.Convention, path *TypePath) (*Node, error) {
	canonical := b.source.Canonical(t)
	if canonical == nil {
		return nil, wrapError(t, path, fmt.Errorf("%w: no canonical form", ErrUnsupportedShape))
	}

	k := key{typ: canonical, convention: convention}
	if n, ok := b.cache.lookup(k); ok {
		return n, nil
	}

	// Cycle: hand out the pending node, its members are filled in further up
	// the call stack.
	if n, ok := b.pending[k]; ok {
		return n, nil
	}

	n := &Node{typ: canonical, convention: convention}
	b.pending[k] = n
	b.order = append(b.order, k)

	if err := b.classify(n, path); err != nil {
		return nil, err
	}

	b.cache.logger.Debug("type node built",
		zap.Stringer("type", canonical),
		zap.Stringer("kind", n.kind),
		zap.Stringer("convention", n.convention),
		zap.Int("members", len(n.members)),
		zap.String("path", path.String()),
		zap.Int("depth", path.Depth()),
	)

	return n, nil
}

// classify decides the node kind; primitives win over list shape, and
// anything else is an object.
func (b *builder) classify(n *Node, path *TypePath) error {
	if ft, ok := b.source.Primitive(n.typ); ok {
		n.kind = KindPrimitive
		n.fieldType = ft

		return nil
	}

	if cs, ok := b.source.(ConventionSource); ok {
		override, err := cs.Convention(n.typ)
		if err != nil {
			return wrapError(n.typ, path, configError(err))
		}

		if err := b.override(n, override, path); err != nil {
			return err
		}
	}

	elem, ok, err := b.source.Elem(n.typ)
	if err != nil {
		return wrapError(n.typ, path, err)
	}

	if ok {
		n.kind = KindList

		n.elem, err = b.resolve(elem, n.convention, path.Slice())

		return err
	}

	desc, err := b.source.Describe(n.typ)
	if err != nil {
		return wrapError(n.typ, path, err)
	}

	n.kind = KindObject

	return b.scanMembers(n, desc, path)
}

// override replaces the node convention with a type-level one. Children
// inherit the effective convention, so the override also applies to the
// nested types reached from this node.
func (b *builder) override(n *Node, c *naming.Convention, path *TypePath) error {
	if c == nil {
		return nil
	}

	if err := c.Validate(); err != nil {
		return wrapError(n.typ, path, configError(err))
	}

	n.convention = naming.Effective(n.convention, c)

	return nil
}

func (b *builder) scanMembers(n *Node, desc *Description, path *TypePath) error {
	if desc == nil {
		desc = &Description{}
	}

	if err := b.override(n, desc.Convention, path); err != nil {
		return err
	}

	n.metadata = desc.Metadata
	n.members = make([]*Member, 0, len(desc.Members))

	seen := make(map[string]string, len(desc.Members))

	for _, spec := range desc.Members {
		if spec.Transient {
			continue
		}

		memberPath := path.Field(spec.Name)

		serialized, err := naming.FieldName(spec.Name, spec.SerializedName, n.convention)
		if err != nil {
			return wrapError(n.typ, memberPath, configError(err))
		}

		if spec.Type == nil {
			return wrapError(n.typ, memberPath, fmt.Errorf("%w: member %q has no type", ErrUnsupportedShape, spec.Name))
		}

		child, err := b.resolve(spec.Type, n.convention, memberPath)
		if err != nil {
			return err
		}

		if other, dup := seen[serialized]; dup {
			b.cache.logger.Warn("duplicate serialized member name",
				zap.Stringer("type", n.typ),
				zap.String("serialized", serialized),
				zap.Strings("members", []string{other, spec.Name}),
			)
		}
		seen[serialized] = spec.Name

		n.members = append(n.members, &Member{
			SerializedName: serialized,
			name:           spec.Name,
			node:           child,
			mutable:        spec.Mutable,
			index:          spec.Index,
		})
	}

	return nil
}
