// Package argtree parses and validates the argument strings understood by
// CmdStan.
//
// An argument string is a flat, whitespace-separated sequence of keywords
// that encodes one tree of nested declarations. Nesting is never written
// explicitly: a keyword belongs to the innermost open declaration that
// declares it, and a declaration closes as soon as the next keyword is not
// one of its own.
//
//	sample num_samples=500 adapt delta=0.95 data file=bernoulli.json
//
// # Declarations
//
// Three kinds of declaration appear in the language:
//
//   - Fields carry an optional scalar value: "thin=2", or bare "thin" to
//     state the field while keeping its default.
//   - Product types group distinct child fields under one keyword:
//     "output file=out.csv refresh=10". Children may appear in any order.
//   - Sum types select exactly one variant: "metric=dense_e", or a variant
//     with its own fields such as "engine=static int_time=3".
//
// The analysis method is a sum type with three equivalent spellings:
// "sample", "method=sample" and "method method=sample".
//
// # Duplicates
//
// Every field may be declared at most once within its enclosing
// declaration. The one exception is a bare declaration followed directly by
// a valued declaration of the same field, as in "gamma gamma=0.5", which
// states the value explicitly. Two adjacent bare declarations ("gamma
// gamma") are rejected as ambiguous.
//
// # Values
//
// Booleans are spelled numerically: "1" or "+1" for true and "0", "+0" or
// "-0" for false. Numbers require a leading digit ("0.5", not ".5") and
// floats also accept "nan", "inf" and "infinity". Paths may be quoted with
// single or double quotes to include separators.
//
// # Fields
//
// Each field of a [Tree] records whether it was absent, declared bare, or
// given an explicit value (see [Field]). Defaults are never filled in by the
// parser; use [Field.Or] with the exported Default constants, or
// [Tree.Canonical] to render a tree with every default resolved.
package argtree
