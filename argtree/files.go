package argtree

import (
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

// defaultSuffix is appended by the tool to output files named without one.
const defaultSuffix = "csv"

// OutputFiles returns the paths of the output files implied by the tree.
// A sample run with more than one chain writes one file per chain, numbered
// from the tree's id. Numbering stops at the largest representable id.
func (t *Tree) OutputFiles() iter.Seq[string] {
	return t.files(t.output().File.Or(DefaultOutputFile))
}

// DiagnosticFiles returns the paths of the diagnostic files implied by the
// tree, which are none when no diagnostic file is configured.
func (t *Tree) DiagnosticFiles() iter.Seq[string] {
	file := t.output().DiagnosticFile.Or(DefaultDiagnosticFile)
	if file == "" {
		return func(func(string) bool) {}
	}

	return t.files(file)
}

// ProfileFiles returns the path of the profiling output file.
func (t *Tree) ProfileFiles() iter.Seq[string] {
	return slices.Values([]string{t.output().ProfileFile.Or(DefaultProfileFile)})
}

// SinglePathFiles returns the per-path CSV and JSON files a pathfinder run
// writes when single paths are saved. It reports false for other methods.
func (t *Tree) SinglePathFiles() (iter.Seq[string], bool) {
	pf, ok := t.Method.(*Pathfinder)
	if !ok {
		return nil, false
	}

	if !pf.SaveSinglePaths.Or(DefaultSaveSinglePaths) {
		return func(func(string) bool) {}, true
	}

	prefix, _ := splitSuffix(t.output().File.Or(DefaultOutputFile))

	n := pf.NumPaths.Or(DefaultNumPaths)
	if n == 1 {
		return slices.Values([]string{prefix + ".csv", prefix + ".json"}), true
	}

	return func(yield func(string) bool) {
		for i := range numbered(t.ID.Or(DefaultID), n) {
			base := prefix + "_path_" + strconv.FormatInt(i, 10) + "."
			if !yield(base+"csv") || !yield(base+"json") {
				return
			}
		}
	}, true
}

func (t *Tree) output() Output {
	o, _ := t.Output.Value()

	return o
}

func (t *Tree) files(file string) iter.Seq[string] {
	prefix, suffix := splitSuffix(file)

	if s, ok := t.Method.(*Sample); ok {
		if n := s.NumChains.Or(DefaultNumChains); n != 1 {
			return func(yield func(string) bool) {
				for i := range numbered(t.ID.Or(DefaultID), n) {
					if !yield(prefix + "_" + strconv.FormatInt(i, 10) + "." + suffix) {
						return
					}
				}
			}
		}
	}

	return slices.Values([]string{prefix + "." + suffix})
}

// numbered yields the n ids starting at id, or fewer when the range would
// pass [math.MaxInt32].
func numbered(id, n int32) iter.Seq[int64] {
	end := min(int64(id)+int64(n), math.MaxInt32+1)

	return func(yield func(int64) bool) {
		for i := int64(id); i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// splitSuffix splits file at its last '.', substituting [defaultSuffix]
// when there is none.
func splitSuffix(file string) (string, string) {
	i := strings.LastIndexByte(file, '.')
	if i < 0 {
		return file, defaultSuffix
	}

	return file[:i], file[i+1:]
}
