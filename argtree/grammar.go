package argtree

import (
	"strings"

	"github.com/goccy/go-yaml"
)

// binding connects one keyword of a product type to the field it sets.
// The same bindings drive parsing, rendering and export, so the three always
// agree on names, order and defaults.
type binding interface {
	names() []string
	parse(p *parser) error
	render(r *renderer)
	export(resolve bool) (any, bool)
}

// product is implemented by every record type of the tree.
type product interface {
	bindings() []binding
}

// Variant is one alternative of a sum type.
type Variant interface {
	// Name returns the keyword that selects the variant.
	Name() string
}

// renderer collects the tokens of a rendered tree.
// With resolve set, absent and bare fields are rendered with their defaults.
// With raw set, paths are emitted verbatim rather than quoted.
type renderer struct {
	parts   []string
	resolve bool
	raw     bool
}

func (r *renderer) emit(s ...string) {
	r.parts = append(r.parts, strings.Join(s, ""))
}

func (r *renderer) String() string { return strings.Join(r.parts, " ") }

// Scalar fields

type value[T any] struct {
	dst  *Field[T]
	read func(*parser) (T, error)
	text func(T) string
	name string
	def  T
}

func (v *value[T]) names() []string { return []string{v.name} }

func (v *value[T]) parse(p *parser) error {
	valued, err := p.declare(v.name, nil)
	if err != nil {
		return err
	}

	if !valued {
		*v.dst = Default[T]()

		return nil
	}

	x, err := v.read(p)
	if err != nil {
		return err
	}

	*v.dst = Set(x)

	return nil
}

func (v *value[T]) render(r *renderer) {
	switch {
	case v.dst.IsExplicit():
		r.emit(v.name, "=", v.format(r, v.dst.value))
	case r.resolve:
		r.emit(v.name, "=", v.format(r, v.def))
	case v.dst.state == Bare:
		r.emit(v.name)
	}
}

func (v *value[T]) format(r *renderer, x T) string {
	if s, ok := any(x).(string); ok && r.raw {
		return s
	}

	return v.text(x)
}

func (v *value[T]) export(resolve bool) (any, bool) {
	switch {
	case v.dst.IsExplicit():
		return v.dst.value, true
	case resolve:
		return v.def, true
	case v.dst.state == Bare:
		return nil, true
	}

	return nil, false
}

func boolean(name string, dst *Field[bool], def bool) binding {
	return &value[bool]{
		name: name,
		dst:  dst,
		def:  def,
		read: func(p *parser) (bool, error) { return scalar(p, ParseBoolean) },
		text: formatBoolean,
	}
}

func float(name string, dst *Field[float64], def float64) binding {
	return &value[float64]{
		name: name,
		dst:  dst,
		def:  def,
		read: func(p *parser) (float64, error) { return scalar(p, ParseFloat) },
		text: formatFloat,
	}
}

func signed[T int32 | int64](name string, dst *Field[T], def T) binding {
	bits := 32
	if _, ok := any(def).(int64); ok {
		bits = 64
	}

	return &value[T]{
		name: name,
		dst:  dst,
		def:  def,
		read: func(p *parser) (T, error) {
			return scalar(p, func(s string) (T, error) {
				n, err := ParseSigned(s, bits)

				return T(n), err
			})
		},
		text: formatInt[T],
	}
}

func unsigned(name string, dst *Field[uint32], def uint32) binding {
	return &value[uint32]{
		name: name,
		dst:  dst,
		def:  def,
		read: func(p *parser) (uint32, error) {
			return scalar(p, func(s string) (uint32, error) {
				n, err := ParseUnsigned(s, 32)

				return uint32(n), err
			})
		},
		text: formatUint[uint32],
	}
}

func filePath(name string, dst *Field[string], def string) binding {
	return &value[string]{
		name: name,
		dst:  dst,
		def:  def,
		read: func(p *parser) (string, error) {
			s, n, err := ParsePath(p.source[p.pos:])
			if err != nil {
				return "", p.wrapAt(p.pos, err)
			}

			p.pos += n

			return s, p.boundary()
		},
		text: formatPath,
	}
}

// Product fields

type group[P any, PP interface {
	*P
	product
}] struct {
	dst  *Field[P]
	name string
}

func record[P any, PP interface {
	*P
	product
}](name string, dst *Field[P]) binding {
	return &group[P, PP]{name: name, dst: dst}
}

func (g *group[P, PP]) names() []string { return []string{g.name} }

func (g *group[P, PP]) parse(p *parser) error {
	valued, err := p.declare(g.name, nil)
	if err != nil {
		return err
	}

	if valued {
		return p.failAt(p.pos-1, ErrUnexpectedToken, "separator")
	}

	var v P

	if err := p.fields(g.name, PP(&v).bindings()); err != nil {
		return err
	}

	*g.dst = Set(v)

	return nil
}

func (g *group[P, PP]) render(r *renderer) {
	if !g.dst.IsPresent() && !r.resolve {
		return
	}

	v := g.dst.value

	r.emit(g.name)

	for _, b := range PP(&v).bindings() {
		b.render(r)
	}
}

func (g *group[P, PP]) export(resolve bool) (any, bool) {
	if !g.dst.IsPresent() && !resolve {
		return nil, false
	}

	v := g.dst.value

	return exportAll(PP(&v).bindings(), resolve), true
}

// Sum fields

// alt is one selectable variant of a sum type.
type alt[V Variant] struct {
	make func() V
	name string
}

type choice[V Variant] struct {
	dst  *Field[V]
	name string
	alts []alt[V]
}

// oneOf binds a sum type. The first alternative is the default variant.
func oneOf[V Variant](name string, dst *Field[V], alts ...alt[V]) binding {
	return &choice[V]{name: name, dst: dst, alts: alts}
}

func (c *choice[V]) names() []string { return []string{c.name} }

func (c *choice[V]) parse(p *parser) error {
	valued, err := p.declare(c.name, nil)
	if err != nil {
		return err
	}

	if !valued {
		*c.dst = Default[V]()

		return nil
	}

	a, err := pick(p, c.alts)
	if err != nil {
		return err
	}

	v, err := build(p, a)
	if err != nil {
		return err
	}

	*c.dst = Set(v)

	return nil
}

func (c *choice[V]) render(r *renderer) {
	v, ok := c.dst.Value()
	if !ok {
		if !r.resolve {
			if c.dst.state == Bare {
				r.emit(c.name)
			}

			return
		}

		v = c.alts[0].make()
	}

	r.emit(c.name, "=", v.Name())
	renderVariant(r, v)
}

func (c *choice[V]) export(resolve bool) (any, bool) {
	v, ok := c.dst.Value()
	if !ok {
		switch {
		case resolve:
			v = c.alts[0].make()
		case c.dst.state == Bare:
			return nil, true
		default:
			return nil, false
		}
	}

	return exportVariant(v, resolve), true
}

// pick consumes the variant keyword at the current position. Variant
// keywords match whole words, so the order of alts only breaks ties between
// identical names.
func pick[V Variant](p *parser, alts []alt[V]) (alt[V], error) {
	word, end := p.keywordAt(p.pos)

	for _, a := range alts {
		if a.name == word {
			p.pos = end

			return a, p.boundary()
		}
	}

	return alt[V]{}, p.failAt(p.pos, ErrUnexpectedToken, altNames(alts)...)
}

// build instantiates a variant and parses its own fields, if it has any.
func build[V Variant](p *parser, a alt[V]) (V, error) {
	v := a.make()

	if pr, ok := any(v).(product); ok {
		if err := p.fields(a.name, pr.bindings()); err != nil {
			return v, err
		}
	}

	return v, nil
}

func altNames[V Variant](alts []alt[V]) []string {
	names := make([]string, len(alts))
	for i, a := range alts {
		names[i] = a.name
	}

	return names
}

func renderVariant(r *renderer, v Variant) {
	if pr, ok := v.(product); ok {
		for _, b := range pr.bindings() {
			b.render(r)
		}
	}
}

// exportVariant represents a unit variant by its name and a variant with
// fields as a single-entry mapping from its name to those fields.
func exportVariant(v Variant, resolve bool) any {
	pr, ok := v.(product)
	if !ok {
		return v.Name()
	}

	return yaml.MapSlice{{Key: v.Name(), Value: exportAll(pr.bindings(), resolve)}}
}

func exportAll(bs []binding, resolve bool) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(bs))

	for _, b := range bs {
		if v, ok := b.export(resolve); ok {
			out = append(out, yaml.MapItem{Key: b.names()[0], Value: v})
		}
	}

	return out
}
