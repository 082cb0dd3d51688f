package argtree

import "math"

// Default values of the top-level fields.
const (
	DefaultID             int32 = 1
	DefaultDataFile             = ""
	DefaultInit                 = "2"
	DefaultSeed           int64 = -1
	DefaultOutputFile           = "output.csv"
	DefaultDiagnosticFile       = ""
	DefaultRefresh        int32 = 100
	DefaultSigFigs        int32 = -1
	DefaultProfileFile          = "profile.csv"
	DefaultNumThreads     int32 = 1
)

// Default values of the sample method.
const (
	DefaultNumSamples     int32  = 1000
	DefaultNumWarmup      int32  = 1000
	DefaultSaveWarmup            = false
	DefaultThin           int32  = 1
	DefaultNumChains      int32  = 1
	DefaultAdaptEngaged          = true
	DefaultGamma                 = 0.05
	DefaultDelta                 = 0.8
	DefaultKappa                 = 0.75
	DefaultT0                    = 10.0
	DefaultInitBuffer     uint32 = 75
	DefaultTermBuffer     uint32 = 50
	DefaultWindow         uint32 = 25
	DefaultMetricFile            = ""
	DefaultStepsize              = 1.0
	DefaultStepsizeJitter        = 0.0
	DefaultIntTime               = 2 * math.Pi
	DefaultMaxDepth       int32  = 10
)

// Default values shared by the quasi-Newton optimizers and pathfinder.
const (
	DefaultInitAlpha         = 0.001
	DefaultTolObj            = 1e-12
	DefaultTolRelObj         = 1e4
	DefaultTolGrad           = 1e-8
	DefaultTolRelGrad        = 1e7
	DefaultTolParam          = 1e-8
	DefaultHistorySize int32 = 5
)

// Default values of the optimize method.
const (
	DefaultOptimizeJacobian       = false
	DefaultOptimizeIter     int32 = 2000
	DefaultSaveIterations         = false
)

// Default values of the variational method.
const (
	DefaultVariationalIter         int32 = 10000
	DefaultGradSamples             int32 = 1
	DefaultElboSamples             int32 = 100
	DefaultEta                           = 1.0
	DefaultVariationalAdaptEngaged       = true
	DefaultVariationalAdaptIter    int32 = 50
	DefaultVariationalTolRelObj          = 0.01
	DefaultEvalElbo                int32 = 100
	DefaultOutputSamples           int32 = 1000
)

// Default values of the diagnose method.
const (
	DefaultEpsilon       = 1e-6
	DefaultGradientError = 1e-6
)

// Default values of the pathfinder method.
const (
	DefaultNumPsisDraws    int32 = 1000
	DefaultNumPaths        int32 = 4
	DefaultSaveSinglePaths       = false
	DefaultMaxLbfgsIters   int32 = 1000
	DefaultNumDraws        int32 = 1000
	DefaultNumElboDraws    int32 = 25
)

// Default values of the generate_quantities, log_prob and laplace methods.
const (
	DefaultFittedParams              = ""
	DefaultUnconstrainedParams       = ""
	DefaultConstrainedParams         = ""
	DefaultLogProbJacobian           = true
	DefaultMode                      = ""
	DefaultLaplaceJacobian           = true
	DefaultLaplaceDraws        int32 = 1000
)
