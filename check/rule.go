package check

import "strings"

// Rule constrains one field of a resolved argument tree.
//
// Path is the dotted location of the field in [argtree.Tree.ToMap], such as
// "method.sample.adapt.delta". Expr is a boolean expr-lang expression over
// the field's value, which is bound to the identifier "value".
type Rule struct {
	Path string
	Expr string
}

const (
	positive    = "value > 0"
	nonNegative = "value >= 0"
	unitOpen    = "value > 0 && value < 1"
	unitClosed  = "value >= 0 && value <= 1"
)

// DefaultRules returns the ranges CmdStan enforces on numeric arguments.
func DefaultRules() []Rule {
	rules := []Rule{
		{"id", nonNegative},
		{"num_threads", "value > 0 || value == -1"},
		{"random.seed", "value == -1 || (value >= 0 && value < 4294967296)"},
		{"output.refresh", nonNegative},
		{"output.sig_figs", "value == -1 || (value >= 0 && value <= 18)"},

		{"method.sample.num_samples", nonNegative},
		{"method.sample.num_warmup", nonNegative},
		{"method.sample.thin", positive},
		{"method.sample.num_chains", positive},
		{"method.sample.adapt.gamma", positive},
		{"method.sample.adapt.delta", unitOpen},
		{"method.sample.adapt.kappa", positive},
		{"method.sample.adapt.t0", positive},
		{"method.sample.algorithm.hmc.stepsize", positive},
		{"method.sample.algorithm.hmc.stepsize_jitter", unitClosed},
		{"method.sample.algorithm.hmc.engine.nuts.max_depth", positive},
		{"method.sample.algorithm.hmc.engine.static.int_time", positive},

		{"method.optimize.iter", positive},

		{"method.variational.iter", positive},
		{"method.variational.grad_samples", positive},
		{"method.variational.elbo_samples", positive},
		{"method.variational.eta", positive},
		{"method.variational.adapt.iter", positive},
		{"method.variational.tol_rel_obj", nonNegative},
		{"method.variational.eval_elbo", positive},
		{"method.variational.output_samples", positive},

		{"method.diagnose.test.gradient.epsilon", positive},
		{"method.diagnose.test.gradient.error", positive},

		{"method.pathfinder.num_psis_draws", positive},
		{"method.pathfinder.num_paths", positive},
		{"method.pathfinder.max_lbfgs_iters", positive},
		{"method.pathfinder.num_draws", positive},
		{"method.pathfinder.num_elbo_draws", positive},

		{"method.laplace.draws", nonNegative},
	}

	for _, prefix := range []string{
		"method.optimize.algorithm.bfgs",
		"method.optimize.algorithm.lbfgs",
		"method.pathfinder",
	} {
		rules = append(rules, toleranceRules(prefix)...)
	}

	return append(rules,
		Rule{"method.optimize.algorithm.lbfgs.history_size", positive},
		Rule{"method.pathfinder.history_size", positive},
	)
}

func toleranceRules(prefix string) []Rule {
	rules := []Rule{{join(prefix, "init_alpha"), positive}}

	for _, name := range []string{
		"tol_obj", "tol_rel_obj", "tol_grad", "tol_rel_grad", "tol_param",
	} {
		rules = append(rules, Rule{join(prefix, name), nonNegative})
	}

	return rules
}

func join(elem ...string) string { return strings.Join(elem, ".") }

// lookup walks m along the dotted path. It reports false when any element
// of the path is missing.
func lookup(m map[string]any, path string) (any, bool) {
	var cur any = m

	for key := range strings.SplitSeq(path, ".") {
		next, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		if cur, ok = next[key]; !ok {
			return nil, false
		}
	}

	return cur, cur != nil
}
