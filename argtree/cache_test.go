package argtree

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/stanarg/log"
)

func TestParseReader_CachesTrees(t *testing.T) {
	ClearCache()
	defer ClearCache()

	ctx := context.Background()

	first, err := ParseReader(ctx, strings.NewReader("sample num_samples=10"))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	second, err := ParseReader(ctx, strings.NewReader("sample num_samples=10"))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if first != second {
		t.Error("expected the cached tree to be returned")
	}

	other, _ := ParseReader(ctx, strings.NewReader("sample num_samples=10"), WithSuggestions(1))
	if other == first {
		t.Error("different options should not share a cache entry")
	}

	ClearCache()

	third, _ := ParseReader(ctx, strings.NewReader("sample num_samples=10"))
	if third == first {
		t.Error("ClearCache should drop cached trees")
	}
}

func TestParseReader_CachesErrors(t *testing.T) {
	ClearCache()
	defer ClearCache()

	ctx := context.Background()

	_, err1 := ParseReader(ctx, strings.NewReader("sample thin=x"))
	_, err2 := ParseReader(ctx, strings.NewReader("sample thin=x"))

	if !errors.Is(err1, ErrMalformedNumber) || err1 != err2 {
		t.Errorf("expected the same cached error, got %v and %v", err1, err2)
	}
}

func TestParseReader_ReadError(t *testing.T) {
	cause := errors.New("disk on fire")

	_, err := ParseReader(context.Background(), io.MultiReader(
		strings.NewReader("sample "),
		errReader{cause},
	))

	if !errors.Is(err, ErrReadInput) || !errors.Is(err, cause) {
		t.Errorf("ParseReader error = %v, want read failure wrapping the cause", err)
	}
}

func TestParseReader_Concurrent(t *testing.T) {
	ClearCache()
	defer ClearCache()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		trees = map[*Tree]struct{}{}
	)

	for range 32 {
		wg.Go(func() {
			tree, err := ParseReader(context.Background(), strings.NewReader("optimize iter=5"))
			if err != nil {
				t.Error(err)

				return
			}

			mu.Lock()
			trees[tree] = struct{}{}
			mu.Unlock()
		})
	}

	wg.Wait()

	if len(trees) != 1 {
		t.Errorf("got %d distinct trees, want 1", len(trees))
	}
}

func TestParseReader_TraceLogging(t *testing.T) {
	ClearCache()
	defer ClearCache()

	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithTimeLayout("none"))

	_, _ = ParseReader(context.Background(), strings.NewReader("sample"), WithLogger(logger))
	_, _ = ParseReader(context.Background(), strings.NewReader("sample"), WithLogger(logger))

	out := buf.String()
	for _, want := range []string{`"msg":"read input"`, `"cache_hit":false`, `"cache_hit":true`, `"msg":"parse complete"`} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %s:\n%s", want, out)
		}
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

const benchSource = "sample num_samples=2000 num_warmup=500 adapt delta=0.95 " +
	"algorithm=hmc engine=nuts max_depth=12 metric=dense_e num_chains=4 " +
	`data file="data/my model.json" output file=out.csv refresh=50 random seed=42`

func BenchmarkParseString(b *testing.B) {
	ctx := context.Background()

	for b.Loop() {
		if _, err := ParseString(ctx, benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseReader_Cached(b *testing.B) {
	ClearCache()
	defer ClearCache()

	ctx := context.Background()

	for b.Loop() {
		if _, err := ParseReader(ctx, strings.NewReader(benchSource)); err != nil {
			b.Fatal(err)
		}
	}
}

func TestHashOptions(t *testing.T) {
	tests := []struct {
		key  optionsKey
		want string
	}{
		{optionsKey{}, "suggestions=0"},
		{optionsKey{Suggestions: DefaultSuggestions}, "suggestions=3"},
		{optionsKey{Suggestions: -1}, "suggestions=-1"},
	}

	seen := map[uint64]optionsKey{}

	for _, tt := range tests {
		if got := string(tt.key.append(nil)); got != tt.want {
			t.Errorf("append(%+v) = %q, want %q", tt.key, got, tt.want)
		}

		h := hashOptions(tt.key)
		if h != hashOptions(tt.key) {
			t.Errorf("hashOptions(%+v) is not stable", tt.key)
		}

		if prev, ok := seen[h]; ok {
			t.Errorf("hashOptions(%+v) collides with %+v", tt.key, prev)
		}

		seen[h] = tt.key
	}
}
