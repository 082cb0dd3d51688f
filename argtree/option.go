package argtree

import (
	"strconv"

	"github.com/ardnew/stanarg/log"
)

// DefaultSuggestions is the default maximum number of keyword suggestions
// attached to a [ParseError].
const DefaultSuggestions = 3

// Option configures a parse call.
type Option func(*options)

type options struct {
	logger      log.Logger
	suggestions int
}

// optionsKey holds the options that influence a parse result.
// It is used to derive cache keys; every field must be encoded by append.
type optionsKey struct {
	Suggestions int
}

// append encodes k onto b.
func (k optionsKey) append(b []byte) []byte {
	b = append(b, "suggestions="...)

	return strconv.AppendInt(b, int64(k.Suggestions), 10)
}

// WithLogger sets the logger used for trace records emitted while parsing.
// The zero value [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSuggestions sets the maximum number of "did you mean" suggestions
// attached to a [ParseError]. Zero disables suggestions.
func WithSuggestions(n int) Option {
	return func(o *options) {
		o.suggestions = max(n, 0)
	}
}

func makeOptions(opts ...Option) options {
	o := options{suggestions: DefaultSuggestions}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func (o options) key() optionsKey {
	return optionsKey{Suggestions: o.suggestions}
}
