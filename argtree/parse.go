package argtree

import (
	"context"
	"log/slog"
	"slices"
)

// ParseString parses one argument string into a [Tree].
//
// Parsing is a pure function of its input. The returned error, if any, is a
// [*ParseError] whose kind can be tested with [errors.Is].
func ParseString(ctx context.Context, s string, opts ...Option) (*Tree, error) {
	o := makeOptions(opts...)
	p := newParser(s, o)

	o.logger.TraceContext(ctx, "parse start", slog.Int("source_bytes", len(s)))

	t, err := p.tree()
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("method", t.Method.Name()))

	return t, nil
}

// ParseMethod parses a string holding only a method selection and the
// method's own fields, such as "optimize algorithm=newton iter=50".
func ParseMethod(ctx context.Context, s string, opts ...Option) (Method, error) {
	o := makeOptions(opts...)
	p := newParser(s, o)

	var m Method

	err := p.fields("", []binding{&dispatch{dst: &m}})
	if err == nil {
		err = p.finish(m)
	}

	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete", slog.String("method", m.Name()))

	return m, nil
}

// parser holds the parser state.
type parser struct {
	input  []byte
	source string
	frames []*frame
	stall  stall
	opts   options
	pos    int
}

// frame is one open product type: the fields it declares and which of them
// have already been matched.
type frame struct {
	owner    string
	bindings []binding
	seen     []bool
}

// stall records the innermost set of keywords that were legal where the
// parser last stopped matching.
type stall struct {
	expected []string
	offset   int
	set      bool
}

func newParser(s string, o options) *parser {
	return &parser{
		input:  []byte(s),
		source: s,
		opts:   o,
	}
}

// tree parses the whole input as exactly one method plus the auxiliary
// top-level fields.
func (p *parser) tree() (*Tree, error) {
	t := new(Tree)

	if err := p.fields("", t.bindings()); err != nil {
		return nil, err
	}

	if err := p.finish(t.Method); err != nil {
		return nil, err
	}

	return t, nil
}

// finish requires the input to be exhausted and a method to be selected.
func (p *parser) finish(m Method) error {
	off := p.skip(p.pos)
	if off < len(p.input) {
		return p.trailing(off)
	}

	if m == nil {
		return p.failAt(len(p.input), ErrMissingMethod, methodClass()...)
	}

	return nil
}

// fields matches the declared bindings of one product type until the next
// declaration belongs to none of them. Each binding matches at most once.
func (p *parser) fields(owner string, bs []binding) error {
	f := &frame{owner: owner, bindings: bs, seen: make([]bool, len(bs))}

	p.frames = append(p.frames, f)
	defer func() { p.frames = p.frames[:len(p.frames)-1] }()

	for {
		off := p.skip(p.pos)
		word, _ := p.keywordAt(off)

		i := f.lookup(word)
		if i < 0 {
			p.stallAt(off)

			return nil
		}

		if f.seen[i] {
			if p.claimedAbove(word) {
				p.stallAt(off)

				return nil
			}

			e := p.failAt(off, ErrDuplicateField, p.expected()...)
			e.Err = e.Err.With(slog.String("scope", f.owner))

			return e
		}

		f.seen[i] = true
		p.pos = off

		if err := bs[i].parse(p); err != nil {
			return err
		}
	}
}

// declare consumes keyword k at the current position. When k is bare the
// adjacency guard runs, and a valued redeclaration of k is consumed in its
// place. It reports whether a value follows, with the '=' consumed.
func (p *parser) declare(k string, class []string) (bool, error) {
	p.pos += len(k)

	if p.peek() != '=' {
		again, err := p.guard(k, class)
		if err != nil || !again {
			return false, err
		}

		p.pos = p.skip(p.pos) + len(k)
	}

	p.pos++

	return true, nil
}

// guard inspects, without consuming, the declaration following a bare
// keyword k. A valued redeclaration of k ("k k=value") is allowed and
// reported. A bare repeat of k, or any declaration of a name in class, is a
// duplicate.
func (p *parser) guard(k string, class []string) (bool, error) {
	off := p.skip(p.pos)
	word, end := p.keywordAt(off)

	switch {
	case word == "":
		return false, nil
	case word == k && p.at(end) == '=':
		return true, nil
	case word == k || slices.Contains(class, word):
		return false, p.failAt(off, ErrDuplicateField, p.expected()...)
	}

	return false, nil
}

// boundary requires a separator or the end of input at the current position.
func (p *parser) boundary() error {
	if p.eof() || isSeparator(p.peek()) {
		return nil
	}

	return p.failAt(p.pos, ErrUnexpectedToken, "separator")
}

// scalar runs a scalar value parser on the token at the current position.
func scalar[T any](p *parser, parse func(string) (T, error)) (T, error) {
	tok := p.token(p.pos)

	v, err := parse(tok)
	if err != nil {
		return v, p.wrapAt(p.pos, err)
	}

	p.pos += len(tok)

	return v, nil
}

// expected returns the keywords acceptable by any open frame.
func (p *parser) expected() []string {
	var exp []string

	for i := len(p.frames) - 1; i >= 0; i-- {
		exp = append(exp, p.frames[i].expected()...)
	}

	return exp
}

func (p *parser) stallAt(off int) {
	if p.stall.set && p.stall.offset >= off {
		return
	}

	p.stall = stall{expected: p.expected(), offset: off, set: true}
}

// claimedAbove reports whether an enclosing frame still accepts word.
func (p *parser) claimedAbove(word string) bool {
	for i := len(p.frames) - 2; i >= 0; i-- {
		f := p.frames[i]
		if j := f.lookup(word); j >= 0 && !f.seen[j] {
			return true
		}
	}

	return false
}

func (f *frame) lookup(word string) int {
	if word == "" {
		return -1
	}

	for i, b := range f.bindings {
		if slices.Contains(b.names(), word) {
			return i
		}
	}

	return -1
}

func (f *frame) expected() []string {
	var exp []string

	for i, b := range f.bindings {
		if !f.seen[i] {
			exp = append(exp, b.names()...)
		}
	}

	return exp
}

// Error construction

func (p *parser) failAt(off int, kind *Error, expected ...string) *ParseError {
	found := p.token(off)

	return &ParseError{
		Err:      kind.With(slog.Int("offset", off)),
		Source:   p.source,
		Found:    found,
		Expected: expected,
		Offset:   off,
	}
}

func (p *parser) wrapAt(off int, err error) *ParseError {
	e := WrapError(err)

	var expected []string

	for _, a := range e.attrs {
		if a.Key == "expected" {
			expected = append(expected, a.Value.String())
		}
	}

	return &ParseError{
		Err:      e.With(slog.Int("offset", off)),
		Source:   p.source,
		Found:    p.token(off),
		Expected: expected,
		Offset:   off,
	}
}

func (p *parser) trailing(off int) *ParseError {
	expected := p.expected()
	if p.stall.set && p.stall.offset == off {
		expected = p.stall.expected
	}

	e := p.failAt(off, ErrTrailingInput, expected...)

	word, _ := p.keywordAt(off)
	if word == "" {
		word = e.Found
	}

	e.Suggestions = suggest(word, expected, p.opts.suggestions)

	return e
}

// Character-level helpers

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.at(p.pos) }

// at returns the byte at off, or 0 past the end of input.
func (p *parser) at(off int) byte {
	if off < 0 || off >= len(p.input) {
		return 0
	}

	return p.input[off]
}

// skip returns the offset of the first non-separator byte at or after off.
func (p *parser) skip(off int) int {
	for off < len(p.input) && isSeparator(p.input[off]) {
		off++
	}

	return off
}

// keywordAt returns the keyword starting at off and the offset just past it.
// A keyword is a run of word bytes followed by '=', a separator, or the end
// of input; anything else yields the empty string.
func (p *parser) keywordAt(off int) (string, int) {
	end := off
	for end < len(p.input) && isWordByte(p.input[end]) {
		end++
	}

	if end == off {
		return "", off
	}

	if c := p.at(end); end < len(p.input) && c != '=' && !isSeparator(c) {
		return "", off
	}

	return p.source[off:end], end
}

// token returns the maximal run of non-separator bytes starting at off.
func (p *parser) token(off int) string {
	if off >= len(p.input) {
		return ""
	}

	return p.source[off : off+tokenLen(p.source[off:])]
}

func tokenLen(s string) int {
	n := 0
	for n < len(s) && !isSeparator(s[n]) {
		n++
	}

	return n
}

func isSeparator(c byte) bool { return c == ' ' || c == '\t' }

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
