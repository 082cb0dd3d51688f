package argtree

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parse results keyed by the hash of the source combined
// with the hash of the options that influence the result.
var globalCache sync.Map

// state is the memoised outcome of parsing one source.
type state struct {
	once sync.Once
	tree *Tree
	err  error
}

// hashOptions hashes the encoded options with xxh3.
func hashOptions(key optionsKey) uint64 {
	return xxh3.Hash(key.append(nil))
}

// ParseReader parses one argument string read from r.
//
// Results, including failures, are cached by content so that repeated
// validation of the same argument string is cheap. The returned [Tree] may be
// shared with other callers and must not be modified.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Tree, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseCached(ctx, string(data), o, opts...)
}

func parseCached(
	ctx context.Context,
	source string,
	o options,
	opts ...Option,
) (*Tree, error) {
	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(o.key())
	sourceKey := strconv.FormatUint(sourceHash^optsHash, 36)

	value, cacheHit := globalCache.LoadOrStore(sourceKey, new(state))

	entry := value.(*state)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.tree, entry.err = ParseString(ctx, source, opts...)
	})

	return entry.tree, entry.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
