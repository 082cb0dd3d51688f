package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/stanarg/argtree"
	"github.com/ardnew/stanarg/log"
)

// Predefined errors.
var (
	ErrViolation   = argtree.NewError("rule violated")
	ErrCompileRule = argtree.NewError("invalid rule")
	ErrEvalRule    = argtree.NewError("rule evaluation failed")
)

// Violation reports a field whose value does not satisfy its rule.
type Violation struct {
	Field string
	Rule  string
	Value any
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s = %v does not satisfy %q",
		ErrViolation.Error(), v.Field, v.Value, v.Rule)
}

// Unwrap returns [ErrViolation].
func (v *Violation) Unwrap() error { return ErrViolation }

// LogValue implements slog.LogValuer.
func (v *Violation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("field", v.Field),
		slog.String("rule", v.Rule),
		slog.Any("value", v.Value),
	)
}

// Option configures a [Tree] call.
type Option func(*options)

type options struct {
	logger log.Logger
	rules  []Rule
}

// WithRules appends rules to the defaults.
func WithRules(rules ...Rule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// WithLogger sets the logger used to report violations.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Tree validates the resolved values of t against the default rules and any
// rules added with [WithRules].
//
// Rules whose field is not part of the tree, such as sampler rules on an
// optimize tree, are skipped. Every violation is reported; the returned
// error joins one [*Violation] per failed rule.
func Tree(ctx context.Context, t *argtree.Tree, opts ...Option) error {
	o := options{rules: DefaultRules()}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	values := t.ToMap(true)

	var errs []error

	for _, rule := range o.rules {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, ok := lookup(values, rule.Path)
		if !ok {
			continue
		}

		pass, err := eval(rule, value)
		if err != nil {
			return err
		}

		if !pass {
			v := &Violation{Field: rule.Path, Rule: rule.Expr, Value: value}
			o.logger.DebugContext(ctx, "check failed", slog.Any("violation", v))
			errs = append(errs, v)
		}
	}

	o.logger.TraceContext(ctx, "check complete",
		slog.Int("rules", len(o.rules)),
		slog.Int("violations", len(errs)),
	)

	return errors.Join(errs...)
}

func eval(rule Rule, value any) (bool, error) {
	env := map[string]any{"value": value}

	program, err := compile(rule.Expr, env)
	if err != nil {
		return false, ErrCompileRule.Wrap(err).With(
			slog.String("field", rule.Path),
			slog.String("rule", rule.Expr),
		)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrEvalRule.Wrap(err).With(
			slog.String("field", rule.Path),
			slog.String("rule", rule.Expr),
		)
	}

	pass, _ := out.(bool)

	return pass, nil
}

func compile(source string, env map[string]any) (*vm.Program, error) {
	return expr.Compile(source, expr.Env(env), expr.AsBool())
}
