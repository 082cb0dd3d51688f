package argtree

import (
	"context"
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// treeOpts compares trees including unexported field state.
var treeOpts = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateNaNs(),
}

func mustParse(t testing.TB, s string) *Tree {
	t.Helper()

	tree, err := ParseString(context.Background(), s)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", s, err)
	}

	return tree
}

func parseErr(t *testing.T, s string) *ParseError {
	t.Helper()

	tree, err := ParseString(context.Background(), s)
	if err == nil {
		t.Fatalf("ParseString(%q) = %v, want error", s, tree)
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("ParseString(%q) error %T is not *ParseError", s, err)
	}

	return pe
}

func TestParseString_MethodSpellings(t *testing.T) {
	for _, name := range MethodNames() {
		t.Run(name, func(t *testing.T) {
			want := mustParse(t, name)
			if got := want.Method.Name(); got != name {
				t.Fatalf("method = %q, want %q", got, name)
			}

			for _, s := range []string{
				"method=" + name,
				"method method=" + name,
				"  method   method=" + name + "\t",
			} {
				if diff := cmp.Diff(want, mustParse(t, s), treeOpts); diff != "" {
					t.Errorf("%q differs from %q (-want +got):\n%s", s, name, diff)
				}
			}
		})
	}
}

func TestParseString_Redeclaration(t *testing.T) {
	tree := mustParse(t, "sample adapt gamma gamma=0.5")

	s := tree.Method.(*Sample)
	adapt, _ := s.Adapt.Value()

	if adapt.Gamma.State() != Explicit || adapt.Gamma.Or(0) != 0.5 {
		t.Errorf("gamma = %v (%v), want explicit 0.5", adapt.Gamma.Or(0), adapt.Gamma.State())
	}
}

func TestParseString_BareField(t *testing.T) {
	tree := mustParse(t, "sample num_samples thin=2")

	s := tree.Method.(*Sample)

	if s.NumSamples.State() != Bare {
		t.Errorf("num_samples state = %v, want bare", s.NumSamples.State())
	}
	if got := s.NumSamples.Or(DefaultNumSamples); got != DefaultNumSamples {
		t.Errorf("num_samples = %d, want default %d", got, DefaultNumSamples)
	}
	if s.NumWarmup.IsPresent() {
		t.Error("num_warmup should be absent")
	}
	if v, ok := s.Thin.Value(); !ok || v != 2 {
		t.Errorf("thin = %d, %v, want 2", v, ok)
	}
}

func TestParseString_OrderIndependent(t *testing.T) {
	a := mustParse(t, "sample num_warmup=10 num_samples=20 adapt delta=0.9 kappa=0.5 data file=x")
	b := mustParse(t, "data file=x sample adapt kappa=0.5 delta=0.9 num_samples=20 num_warmup=10")

	if diff := cmp.Diff(a, b, treeOpts); diff != "" {
		t.Errorf("trees differ (-a +b):\n%s", diff)
	}

	a = mustParse(t, "optimize output sig_figs=3 refresh=10")
	b = mustParse(t, "optimize output refresh=10 sig_figs=3")

	if diff := cmp.Diff(a, b, treeOpts); diff != "" {
		t.Errorf("output trees differ (-a +b):\n%s", diff)
	}
}

func TestParseString_SharedNames(t *testing.T) {
	for _, s := range []string{
		"variational iter=5 adapt iter=7",
		"variational adapt iter=7 iter=5",
	} {
		t.Run(s, func(t *testing.T) {
			v := mustParse(t, s).Method.(*Variational)
			adapt, _ := v.Adapt.Value()

			if got := v.Iter.Or(0); got != 5 {
				t.Errorf("variational iter = %d, want 5", got)
			}
			if got := adapt.Iter.Or(0); got != 7 {
				t.Errorf("adapt iter = %d, want 7", got)
			}
		})
	}
}

func TestParseString_Values(t *testing.T) {
	tests := []struct {
		input string
		check func(*Tree) bool
	}{
		{"sample save_warmup=+1", func(t *Tree) bool { return t.Method.(*Sample).SaveWarmup.Or(false) }},
		{"sample save_warmup=-0", func(t *Tree) bool { return !t.Method.(*Sample).SaveWarmup.Or(true) }},
		{"sample adapt engaged=+0", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Adapt.Value()
			v, ok := a.Engaged.Value()
			return ok && !v
		}},
		{"sample adapt gamma=1e10", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Adapt.Value()
			return a.Gamma.Or(0) == 1e10
		}},
		{"sample algorithm algorithm=fixed_param", func(t *Tree) bool {
			return t.Method.(*Sample).Algorithm.IsExplicit()
		}},
		{"sample data file='a b.csv'", func(t *Tree) bool {
			d, _ := t.Data.Value()
			return d.File.Or("") == "a b.csv"
		}},
		{"sample num_samples=+5", func(t *Tree) bool { return t.Method.(*Sample).NumSamples.Or(0) == 5 }},
		{"sample adapt delta=3.", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Adapt.Value()
			return a.Delta.Or(0) == 3
		}},
		{"sample adapt delta=-Infinity", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Adapt.Value()
			return math.IsInf(a.Delta.Or(0), -1)
		}},
		{"sample adapt gamma=+NaN", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Adapt.Value()
			return math.IsNaN(a.Gamma.Or(0))
		}},
		{"optimize random seed=-1", func(t *Tree) bool {
			r, _ := t.Random.Value()
			return r.Seed.Or(0) == -1
		}},
		{`sample data file="my data.json"`, func(t *Tree) bool {
			d, _ := t.Data.Value()
			return d.File.Or("") == "my data.json"
		}},
		{`sample init='it"s.json'`, func(t *Tree) bool { return t.Init.Or("") == `it"s.json` }},
		{"sample data file= output file=o.csv", func(t *Tree) bool {
			d, _ := t.Data.Value()
			v, ok := d.File.Value()
			return ok && v == ""
		}},
		{"sample\tnum_chains=4", func(t *Tree) bool { return t.Method.(*Sample).NumChains.Or(0) == 4 }},
		{"sample algorithm=hmc engine=static int_time=3 metric=dense_e", func(t *Tree) bool {
			h, _ := t.Method.(*Sample).Algorithm.Value()
			hmc := h.(*Hmc)
			e, _ := hmc.Engine.Value()
			m, _ := hmc.Metric.Value()
			return e.(*Static).IntTime.Or(0) == 3 && m == DenseE
		}},
		{"sample algorithm=fixed_param", func(t *Tree) bool {
			a, _ := t.Method.(*Sample).Algorithm.Value()
			return a == FixedParam{}
		}},
		{"optimize algorithm=newton iter=50 jacobian=1", func(t *Tree) bool {
			o := t.Method.(*Optimize)
			a, _ := o.Algorithm.Value()
			return a == Newton{} && o.Iter.Or(0) == 50 && o.Jacobian.Or(false)
		}},
		{"diagnose test=gradient epsilon=1e-4", func(t *Tree) bool {
			g, _ := t.Method.(*Diagnose).Test.Value()
			return g.(*Gradient).Epsilon.Or(0) == 1e-4
		}},
		{"laplace mode=m.csv draws=10", func(t *Tree) bool {
			l := t.Method.(*Laplace)
			return l.Mode.Or("") == "m.csv" && l.Draws.Or(0) == 10
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if tree := mustParse(t, tt.input); !tt.check(tree) {
				t.Errorf("unexpected tree for %q: %s", tt.input, tree)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		input  string
		kind   *Error
		offset int
	}{
		{"", ErrMissingMethod, 0},
		{"method", ErrMissingMethod, 6},
		{"data file=x.json", ErrMissingMethod, 16},
		{"sample adapt gamma gamma", ErrDuplicateField, 19},
		{"sample data file=a data file=b", ErrDuplicateField, 19},
		{"sample sample", ErrDuplicateField, 7},
		{"sample optimize", ErrDuplicateField, 7},
		{"sample method=sample", ErrDuplicateField, 7},
		{"method=sample sample", ErrDuplicateField, 14},
		{"method sample", ErrDuplicateField, 7},
		{"sample thin=1 thin=2", ErrDuplicateField, 14},
		{"variational adapt iter=1 iter=2 iter=3", ErrDuplicateField, 32},
		{"sample save_warmup=2", ErrMalformedBoolean, 19},
		{"sample adapt engaged=2", ErrMalformedBoolean, 21},
		{"sample data file='a b.csv", ErrUnterminatedQuotedPath, 17},
		{"sample algorithm algorithm", ErrDuplicateField, 17},
		{"sample save_warmup=-1", ErrMalformedBoolean, 19},
		{"sample save_warmup=", ErrUnexpectedToken, 19},
		{"sample adapt delta=.5", ErrMalformedNumber, 19},
		{"sample adapt delta=1e", ErrMalformedNumber, 19},
		{"sample adapt delta=0x1", ErrMalformedNumber, 19},
		{"sample adapt delta=1e400", ErrNumericOverflow, 19},
		{"sample num_samples=2147483648", ErrNumericOverflow, 19},
		{"sample num_samples=1.0", ErrMalformedNumber, 19},
		{"sample adapt window=-1", ErrMalformedNumber, 20},
		{`sample data file="a b`, ErrUnterminatedQuotedPath, 17},
		{`sample data file="a"b`, ErrUnexpectedToken, 20},
		{"sample adapt=1", ErrUnexpectedToken, 12},
		{"sample algorithm=foo", ErrUnexpectedToken, 17},
		{"sample algorithm=hmcx", ErrUnexpectedToken, 17},
		{"method=", ErrUnexpectedToken, 7},
		{"sample bogus", ErrTrailingInput, 7},
		{"sample\nnum_samples=1", ErrTrailingInput, 0},
		{"sample num_samples=1 num_chains=2 output file=o.csv num_chains=3", ErrTrailingInput, 52},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pe := parseErr(t, tt.input)

			if !errors.Is(pe, tt.kind) {
				t.Errorf("error kind = %v, want %v", pe.Err, tt.kind)
			}
			if pe.Offset != tt.offset {
				t.Errorf("offset = %d, want %d\n%v", pe.Offset, tt.offset, pe)
			}
			if pe.Source != tt.input {
				t.Errorf("source = %q, want %q", pe.Source, tt.input)
			}
		})
	}
}

func TestParseString_ExpectedSet(t *testing.T) {
	pe := parseErr(t, "sample adapt bogus")

	for _, want := range []string{"gamma", "num_warmup", "data", "num_threads"} {
		if !slices.Contains(pe.Expected, want) {
			t.Errorf("expected set %v is missing %q", pe.Expected, want)
		}
	}

	if slices.Contains(pe.Expected, "adapt") {
		t.Errorf("expected set %v should not offer the consumed %q", pe.Expected, "adapt")
	}

	pe = parseErr(t, "")
	if !slices.Contains(pe.Expected, "method") || !slices.Contains(pe.Expected, "laplace") {
		t.Errorf("missing method should expect the method class, got %v", pe.Expected)
	}
}

func TestParseString_Suggestions(t *testing.T) {
	pe := parseErr(t, "sample num_sample=10")
	if !slices.Contains(pe.Suggestions, "num_samples") {
		t.Errorf("suggestions = %v, want num_samples", pe.Suggestions)
	}

	_, err := ParseString(context.Background(), "sample num_sample=10", WithSuggestions(0))

	var quiet *ParseError
	if !errors.As(err, &quiet) || len(quiet.Suggestions) != 0 {
		t.Errorf("suggestions should be disabled, got %v", err)
	}
}

func TestParseError_Error(t *testing.T) {
	pe := parseErr(t, "sample thin=x")

	want := "parse error at offset 12: malformed number \"x\"\n" +
		"  | sample thin=x\n" +
		"                ^"
	if got := pe.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}

	pe = parseErr(t, "sample thin=1 thin=2")
	if got := pe.Error(); !containsAll(got,
		`duplicate field "thin=2"`, `expected: "adapt"`, `"num_threads"`) {
		t.Errorf("Error() = %s", got)
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(context.Background(), "optimize algorithm=newton iter=50")
	if err != nil {
		t.Fatalf("ParseMethod failed: %v", err)
	}

	o, ok := m.(*Optimize)
	if !ok || o.Iter.Or(0) != 50 {
		t.Errorf("ParseMethod = %#v", m)
	}

	_, err = ParseMethod(context.Background(), "sample data file=x")
	if !errors.Is(err, ErrTrailingInput) {
		t.Errorf("ParseMethod with top-level field = %v, want trailing input", err)
	}

	_, err = ParseMethod(context.Background(), "")
	if !errors.Is(err, ErrMissingMethod) {
		t.Errorf("ParseMethod(\"\") = %v, want missing method", err)
	}
}

func TestIsMethod(t *testing.T) {
	if !IsMethod("generate_quantities") || IsMethod("method") || IsMethod("data") {
		t.Error("IsMethod misclassifies keywords")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}

	return true
}
