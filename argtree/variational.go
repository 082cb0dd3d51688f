package argtree

// Variational runs automatic differentiation variational inference.
type Variational struct {
	Algorithm     Field[VariationalAlgorithm]
	Adapt         Field[VariationalAdapt]
	Eta           Field[float64]
	TolRelObj     Field[float64]
	Iter          Field[int32]
	GradSamples   Field[int32]
	ElboSamples   Field[int32]
	EvalElbo      Field[int32]
	OutputSamples Field[int32]
}

func (*Variational) Name() string { return "variational" }
func (*Variational) method()      {}

func (v *Variational) bindings() []binding {
	return []binding{
		oneOf("algorithm", &v.Algorithm,
			alt[VariationalAlgorithm]{name: "meanfield", make: func() VariationalAlgorithm { return Meanfield }},
			alt[VariationalAlgorithm]{name: "fullrank", make: func() VariationalAlgorithm { return Fullrank }},
		),
		signed("iter", &v.Iter, DefaultVariationalIter),
		signed("grad_samples", &v.GradSamples, DefaultGradSamples),
		signed("elbo_samples", &v.ElboSamples, DefaultElboSamples),
		float("eta", &v.Eta, DefaultEta),
		record("adapt", &v.Adapt),
		float("tol_rel_obj", &v.TolRelObj, DefaultVariationalTolRelObj),
		signed("eval_elbo", &v.EvalElbo, DefaultEvalElbo),
		signed("output_samples", &v.OutputSamples, DefaultOutputSamples),
	}
}

// VariationalAdapt configures adaptation of the stepsize scale eta.
type VariationalAdapt struct {
	Iter    Field[int32]
	Engaged Field[bool]
}

func (a *VariationalAdapt) bindings() []binding {
	return []binding{
		boolean("engaged", &a.Engaged, DefaultVariationalAdaptEngaged),
		signed("iter", &a.Iter, DefaultVariationalAdaptIter),
	}
}

// VariationalAlgorithm is the family of the variational approximation.
type VariationalAlgorithm uint8

const (
	Meanfield VariationalAlgorithm = iota // meanfield
	Fullrank                              // fullrank
)

// Name returns the keyword of the algorithm.
func (a VariationalAlgorithm) Name() string {
	switch a {
	case Meanfield:
		return "meanfield"
	case Fullrank:
		return "fullrank"
	default:
		return "unknown"
	}
}

func (a VariationalAlgorithm) String() string { return a.Name() }
