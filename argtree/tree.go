package argtree

// Tree is one parsed argument string: exactly one [Method] plus the
// auxiliary top-level fields.
//
// A Tree is never modified after parsing. Trees returned from the cache by
// [ParseReader] are shared between callers.
type Tree struct {
	Method     Method
	Data       Field[Data]
	Random     Field[Random]
	Output     Field[Output]
	Init       Field[string]
	ID         Field[int32]
	NumThreads Field[int32]
}

func (t *Tree) bindings() []binding {
	return []binding{
		&dispatch{dst: &t.Method},
		signed("id", &t.ID, DefaultID),
		record("data", &t.Data),
		filePath("init", &t.Init, DefaultInit),
		record("random", &t.Random),
		record("output", &t.Output),
		signed("num_threads", &t.NumThreads, DefaultNumThreads),
	}
}

// Data names the input data file.
type Data struct {
	File Field[string]
}

func (d *Data) bindings() []binding {
	return []binding{filePath("file", &d.File, DefaultDataFile)}
}

// Random seeds the pseudo-random number generator.
type Random struct {
	Seed Field[int64]
}

func (r *Random) bindings() []binding {
	return []binding{signed("seed", &r.Seed, DefaultSeed)}
}

// Output configures the files written by the tool.
type Output struct {
	File           Field[string]
	DiagnosticFile Field[string]
	ProfileFile    Field[string]
	Refresh        Field[int32]
	SigFigs        Field[int32]
}

func (o *Output) bindings() []binding {
	return []binding{
		filePath("file", &o.File, DefaultOutputFile),
		filePath("diagnostic_file", &o.DiagnosticFile, DefaultDiagnosticFile),
		signed("refresh", &o.Refresh, DefaultRefresh),
		signed("sig_figs", &o.SigFigs, DefaultSigFigs),
		filePath("profile_file", &o.ProfileFile, DefaultProfileFile),
	}
}

// String renders the tree as an argument string holding exactly the fields
// that were mentioned: explicit fields as "name=value", bare fields as
// "name". The method is always spelled "method=variant".
func (t *Tree) String() string {
	r := renderer{}
	for _, b := range t.bindings() {
		b.render(&r)
	}

	return r.String()
}

// Canonical renders every field of the tree in declaration order with
// defaults substituted for bare and absent fields.
func (t *Tree) Canonical() string {
	r := renderer{resolve: true}
	for _, b := range t.bindings() {
		b.render(&r)
	}

	return r.String()
}

// Args returns the tokens of [Tree.Canonical], ready to be passed as
// separate process arguments. Paths are never quoted.
func (t *Tree) Args() []string {
	r := renderer{resolve: true, raw: true}
	for _, b := range t.bindings() {
		b.render(&r)
	}

	return r.parts
}
