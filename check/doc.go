// Package check validates the numeric ranges of a parsed argument tree
// before it is handed to CmdStan.
//
// The parser only checks that values are well formed. A tree such as
// "sample adapt delta=1.5" parses, but CmdStan rejects it at startup. [Tree]
// reports such values up front:
//
//	if err := check.Tree(ctx, tree); errors.Is(err, check.ErrViolation) {
//		fmt.Println(err)
//	}
//
// Rules are expr-lang expressions evaluated against the resolved value of a
// single field. Additional rules can be supplied with [WithRules].
package check
