package argtree

// Sample draws from the posterior with Markov chain Monte Carlo.
type Sample struct {
	Adapt      Field[SampleAdapt]
	Algorithm  Field[SampleAlgorithm]
	NumSamples Field[int32]
	NumWarmup  Field[int32]
	Thin       Field[int32]
	NumChains  Field[int32]
	SaveWarmup Field[bool]
}

func (*Sample) Name() string { return "sample" }
func (*Sample) method()      {}

func (s *Sample) bindings() []binding {
	return []binding{
		signed("num_samples", &s.NumSamples, DefaultNumSamples),
		signed("num_warmup", &s.NumWarmup, DefaultNumWarmup),
		boolean("save_warmup", &s.SaveWarmup, DefaultSaveWarmup),
		signed("thin", &s.Thin, DefaultThin),
		record("adapt", &s.Adapt),
		oneOf("algorithm", &s.Algorithm,
			alt[SampleAlgorithm]{name: "hmc", make: func() SampleAlgorithm { return new(Hmc) }},
			alt[SampleAlgorithm]{name: "fixed_param", make: func() SampleAlgorithm { return FixedParam{} }},
		),
		signed("num_chains", &s.NumChains, DefaultNumChains),
	}
}

// SampleAdapt configures warmup adaptation.
type SampleAdapt struct {
	Gamma      Field[float64]
	Delta      Field[float64]
	Kappa      Field[float64]
	T0         Field[float64]
	InitBuffer Field[uint32]
	TermBuffer Field[uint32]
	Window     Field[uint32]
	Engaged    Field[bool]
}

func (a *SampleAdapt) bindings() []binding {
	return []binding{
		boolean("engaged", &a.Engaged, DefaultAdaptEngaged),
		float("gamma", &a.Gamma, DefaultGamma),
		float("delta", &a.Delta, DefaultDelta),
		float("kappa", &a.Kappa, DefaultKappa),
		float("t0", &a.T0, DefaultT0),
		unsigned("init_buffer", &a.InitBuffer, DefaultInitBuffer),
		unsigned("term_buffer", &a.TermBuffer, DefaultTermBuffer),
		unsigned("window", &a.Window, DefaultWindow),
	}
}

// SampleAlgorithm is the sampler selected by [Sample]: [*Hmc] or
// [FixedParam].
type SampleAlgorithm interface {
	Variant
	sampleAlgorithm()
}

// Hmc is Hamiltonian Monte Carlo.
type Hmc struct {
	Engine         Field[Engine]
	MetricFile     Field[string]
	Stepsize       Field[float64]
	StepsizeJitter Field[float64]
	Metric         Field[Metric]
}

func (*Hmc) Name() string     { return "hmc" }
func (*Hmc) sampleAlgorithm() {}

func (h *Hmc) bindings() []binding {
	return []binding{
		oneOf("engine", &h.Engine,
			alt[Engine]{name: "nuts", make: func() Engine { return new(Nuts) }},
			alt[Engine]{name: "static", make: func() Engine { return new(Static) }},
		),
		oneOf("metric", &h.Metric,
			alt[Metric]{name: "diag_e", make: func() Metric { return DiagE }},
			alt[Metric]{name: "unit_e", make: func() Metric { return UnitE }},
			alt[Metric]{name: "dense_e", make: func() Metric { return DenseE }},
		),
		filePath("metric_file", &h.MetricFile, DefaultMetricFile),
		float("stepsize", &h.Stepsize, DefaultStepsize),
		float("stepsize_jitter", &h.StepsizeJitter, DefaultStepsizeJitter),
	}
}

// FixedParam samples with all parameters held at their initial values.
type FixedParam struct{}

func (FixedParam) Name() string     { return "fixed_param" }
func (FixedParam) sampleAlgorithm() {}

// Engine is the HMC integration-time engine: [*Nuts] or [*Static].
type Engine interface {
	Variant
	engine()
}

// Nuts is the No-U-Turn sampler.
type Nuts struct {
	MaxDepth Field[int32]
}

func (*Nuts) Name() string { return "nuts" }
func (*Nuts) engine()      {}

func (n *Nuts) bindings() []binding {
	return []binding{signed("max_depth", &n.MaxDepth, DefaultMaxDepth)}
}

// Static uses a fixed integration time.
type Static struct {
	IntTime Field[float64]
}

func (*Static) Name() string { return "static" }
func (*Static) engine()      {}

func (s *Static) bindings() []binding {
	return []binding{float("int_time", &s.IntTime, DefaultIntTime)}
}

// Metric is the geometry of the HMC mass matrix.
type Metric uint8

const (
	DiagE  Metric = iota // diag_e
	UnitE                // unit_e
	DenseE               // dense_e
)

// Name returns the keyword of the metric.
func (m Metric) Name() string {
	switch m {
	case DiagE:
		return "diag_e"
	case UnitE:
		return "unit_e"
	case DenseE:
		return "dense_e"
	default:
		return "unknown"
	}
}

func (m Metric) String() string { return m.Name() }
