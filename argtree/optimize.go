package argtree

// Optimize finds a posterior mode or maximum likelihood estimate.
type Optimize struct {
	Algorithm      Field[OptimizeAlgorithm]
	Iter           Field[int32]
	Jacobian       Field[bool]
	SaveIterations Field[bool]
}

func (*Optimize) Name() string { return "optimize" }
func (*Optimize) method()      {}

func (o *Optimize) bindings() []binding {
	return []binding{
		oneOf("algorithm", &o.Algorithm,
			alt[OptimizeAlgorithm]{name: "lbfgs", make: func() OptimizeAlgorithm { return new(Lbfgs) }},
			alt[OptimizeAlgorithm]{name: "bfgs", make: func() OptimizeAlgorithm { return new(Bfgs) }},
			alt[OptimizeAlgorithm]{name: "newton", make: func() OptimizeAlgorithm { return Newton{} }},
		),
		boolean("jacobian", &o.Jacobian, DefaultOptimizeJacobian),
		signed("iter", &o.Iter, DefaultOptimizeIter),
		boolean("save_iterations", &o.SaveIterations, DefaultSaveIterations),
	}
}

// OptimizeAlgorithm is the optimizer selected by [Optimize]: [*Lbfgs],
// [*Bfgs] or [Newton].
type OptimizeAlgorithm interface {
	Variant
	optimizeAlgorithm()
}

// Tolerances holds the line search and convergence settings shared by the
// quasi-Newton optimizers and [Pathfinder].
type Tolerances struct {
	InitAlpha  Field[float64]
	TolObj     Field[float64]
	TolRelObj  Field[float64]
	TolGrad    Field[float64]
	TolRelGrad Field[float64]
	TolParam   Field[float64]
}

func (t *Tolerances) bindings() []binding {
	return []binding{
		float("init_alpha", &t.InitAlpha, DefaultInitAlpha),
		float("tol_obj", &t.TolObj, DefaultTolObj),
		float("tol_rel_obj", &t.TolRelObj, DefaultTolRelObj),
		float("tol_grad", &t.TolGrad, DefaultTolGrad),
		float("tol_rel_grad", &t.TolRelGrad, DefaultTolRelGrad),
		float("tol_param", &t.TolParam, DefaultTolParam),
	}
}

// Bfgs is the BFGS quasi-Newton optimizer.
type Bfgs struct {
	Tolerances
}

func (*Bfgs) Name() string       { return "bfgs" }
func (*Bfgs) optimizeAlgorithm() {}

// Lbfgs is the limited-memory BFGS optimizer.
type Lbfgs struct {
	Tolerances

	HistorySize Field[int32]
}

func (*Lbfgs) Name() string       { return "lbfgs" }
func (*Lbfgs) optimizeAlgorithm() {}

func (l *Lbfgs) bindings() []binding {
	return append(l.Tolerances.bindings(),
		signed("history_size", &l.HistorySize, DefaultHistorySize),
	)
}

// Newton is Newton's method.
type Newton struct{}

func (Newton) Name() string       { return "newton" }
func (Newton) optimizeAlgorithm() {}

// Pathfinder runs multi-path variational inference seeded by L-BFGS.
type Pathfinder struct {
	Tolerances

	HistorySize     Field[int32]
	NumPsisDraws    Field[int32]
	NumPaths        Field[int32]
	MaxLbfgsIters   Field[int32]
	NumDraws        Field[int32]
	NumElboDraws    Field[int32]
	SaveSinglePaths Field[bool]
}

func (*Pathfinder) Name() string { return "pathfinder" }
func (*Pathfinder) method()      {}

func (f *Pathfinder) bindings() []binding {
	return append(f.Tolerances.bindings(),
		signed("history_size", &f.HistorySize, DefaultHistorySize),
		signed("num_psis_draws", &f.NumPsisDraws, DefaultNumPsisDraws),
		signed("num_paths", &f.NumPaths, DefaultNumPaths),
		boolean("save_single_paths", &f.SaveSinglePaths, DefaultSaveSinglePaths),
		signed("max_lbfgs_iters", &f.MaxLbfgsIters, DefaultMaxLbfgsIters),
		signed("num_draws", &f.NumDraws, DefaultNumDraws),
		signed("num_elbo_draws", &f.NumElboDraws, DefaultNumElboDraws),
	)
}
