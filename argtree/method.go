package argtree

import "slices"

// methodKeyword names the top-level sum type.
const methodKeyword = "method"

// Method is the analysis selected by an argument string: one of [*Sample],
// [*Optimize], [*Variational], [*Diagnose], [*GenerateQuantities],
// [*Pathfinder], [*LogProb] or [*Laplace].
type Method interface {
	Variant
	product
	method()
}

var methods = []alt[Method]{
	{name: "sample", make: func() Method { return new(Sample) }},
	{name: "optimize", make: func() Method { return new(Optimize) }},
	{name: "variational", make: func() Method { return new(Variational) }},
	{name: "diagnose", make: func() Method { return new(Diagnose) }},
	{name: "generate_quantities", make: func() Method { return new(GenerateQuantities) }},
	{name: "pathfinder", make: func() Method { return new(Pathfinder) }},
	{name: "log_prob", make: func() Method { return new(LogProb) }},
	{name: "laplace", make: func() Method { return new(Laplace) }},
}

// MethodNames returns the keywords of every method variant.
func MethodNames() []string { return altNames(methods) }

// methodClass returns the method keyword and every variant keyword. Any two
// of them denote the same logical field.
func methodClass() []string {
	return append([]string{methodKeyword}, MethodNames()...)
}

// dispatch binds the method selection, which accepts "variant",
// "method=variant" and "method method=variant" as equivalent spellings.
type dispatch struct {
	dst *Method
}

func (d *dispatch) names() []string { return methodClass() }

func (d *dispatch) parse(p *parser) error {
	class := methodClass()

	if word, _ := p.keywordAt(p.pos); word == methodKeyword {
		valued, err := p.declare(methodKeyword, class[1:])
		if err != nil || !valued {
			// A bare "method" selects nothing; the driver reports it missing.
			return err
		}

		a, err := pick(p, methods)
		if err != nil {
			return err
		}

		return d.build(p, a)
	}

	a, err := pick(p, methods)
	if err != nil {
		return err
	}

	if _, err := p.guard("", class); err != nil {
		return err
	}

	return d.build(p, a)
}

func (d *dispatch) build(p *parser, a alt[Method]) error {
	m, err := build(p, a)
	if err != nil {
		return err
	}

	*d.dst = m

	return nil
}

func (d *dispatch) render(r *renderer) {
	if *d.dst == nil {
		return
	}

	r.emit(methodKeyword, "=", (*d.dst).Name())
	renderVariant(r, *d.dst)
}

func (d *dispatch) export(resolve bool) (any, bool) {
	if *d.dst == nil {
		return nil, false
	}

	return exportVariant(*d.dst, resolve), true
}

// IsMethod reports whether name is the keyword of a method variant.
func IsMethod(name string) bool {
	return slices.Contains(MethodNames(), name)
}

// Diagnose checks the model's gradients.
type Diagnose struct {
	Test Field[DiagnoseTest]
}

func (*Diagnose) Name() string { return "diagnose" }
func (*Diagnose) method()      {}

func (d *Diagnose) bindings() []binding {
	return []binding{
		oneOf("test", &d.Test,
			alt[DiagnoseTest]{name: "gradient", make: func() DiagnoseTest { return new(Gradient) }},
		),
	}
}

// DiagnoseTest is the diagnostic selected by [Diagnose]. Its only variant
// is [*Gradient].
type DiagnoseTest interface {
	Variant
	diagnoseTest()
}

// Gradient compares model gradients against finite differences.
type Gradient struct {
	Epsilon Field[float64]
	Error   Field[float64]
}

func (*Gradient) Name() string  { return "gradient" }
func (*Gradient) diagnoseTest() {}

func (g *Gradient) bindings() []binding {
	return []binding{
		float("epsilon", &g.Epsilon, DefaultEpsilon),
		float("error", &g.Error, DefaultGradientError),
	}
}

// GenerateQuantities evaluates generated quantities over existing draws.
type GenerateQuantities struct {
	FittedParams Field[string]
}

func (*GenerateQuantities) Name() string { return "generate_quantities" }
func (*GenerateQuantities) method()      {}

func (g *GenerateQuantities) bindings() []binding {
	return []binding{
		filePath("fitted_params", &g.FittedParams, DefaultFittedParams),
	}
}

// LogProb evaluates the log density and its gradient at given parameters.
type LogProb struct {
	UnconstrainedParams Field[string]
	ConstrainedParams   Field[string]
	Jacobian            Field[bool]
}

func (*LogProb) Name() string { return "log_prob" }
func (*LogProb) method()      {}

func (l *LogProb) bindings() []binding {
	return []binding{
		filePath("unconstrained_params", &l.UnconstrainedParams, DefaultUnconstrainedParams),
		filePath("constrained_params", &l.ConstrainedParams, DefaultConstrainedParams),
		boolean("jacobian", &l.Jacobian, DefaultLogProbJacobian),
	}
}

// Laplace samples from a normal approximation centred at a mode.
type Laplace struct {
	Mode     Field[string]
	Draws    Field[int32]
	Jacobian Field[bool]
}

func (*Laplace) Name() string { return "laplace" }
func (*Laplace) method()      {}

func (l *Laplace) bindings() []binding {
	return []binding{
		filePath("mode", &l.Mode, DefaultMode),
		boolean("jacobian", &l.Jacobian, DefaultLaplaceJacobian),
		signed("draws", &l.Draws, DefaultLaplaceDraws),
	}
}
