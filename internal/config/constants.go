package config

// SourceFileExt is the recognized extension for CAM surface-language source
// files handed to cmd/cam.
const SourceFileExt = ".cam"

// OverflowPolicy selects how ParseNum and Plus behave once a non-negative
// integer literal or sum would exceed the machine word.
type OverflowPolicy string

const (
	// OverflowError rejects the overflowing literal/sum with a diagnostic.
	// Default: this calculus only has non-negative integers, so there's no
	// natural "saturate at what" target, and silent wraparound would
	// produce a negative int64, violating that invariant.
	OverflowError OverflowPolicy = "error"
	// OverflowWrap wraps using native two's-complement arithmetic.
	OverflowWrap OverflowPolicy = "wrap"
	// OverflowSaturate clamps to math.MaxInt64.
	OverflowSaturate OverflowPolicy = "saturate"
)

// DefaultMaxToken is MAXTOK when no config file overrides it.
const DefaultMaxToken = 256

// DefaultMaxOptimizerPassMultiplier bounds the fixpoint loop: it runs at
// most DefaultMaxOptimizerPassMultiplier * nodeCount passes before it is
// treated as an internal error instead of looping forever.
const DefaultMaxOptimizerPassMultiplier = 8
