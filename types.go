package strukt

// ExcessPropertyPolicy controls how input keys and indexes not declared by
// the schema are handled.
type ExcessPropertyPolicy int

const (
	ExcessIgnore ExcessPropertyPolicy = iota // Drop excess entries from the output.
	ExcessError                              // Report unexpected_key for each excess entry.
)

// ErrorsPolicy dictates how much of a node's children are explored before
// stopping.
type ErrorsPolicy int

const (
	ErrorsFirst ErrorsPolicy = iota // Stop at the first failure within a node.
	ErrorsAll                       // Accumulate all failures within a node.
)

// UnionMergePolicy resolves conflicts when the union best-output merge sees
// the same key decoded by several succeeding members.
type UnionMergePolicy int

const (
	UnionMergeFirstWins UnionMergePolicy = iota // Earlier member (weight order) keeps the key.
	UnionMergeLastWins                          // Later member overwrites the key.
)

// ParseOpt bundles decode/encode options.
type ParseOpt struct {
	OnExcessProperty ExcessPropertyPolicy
	Errors           ErrorsPolicy
	UnionMerge       UnionMergePolicy
	// AllowAsync enables refinement hooks that may suspend. Without it a
	// suspending hook is rejected with a forbidden issue.
	AllowAsync bool
}

// undefinedValue is the runtime representation of the undefined scalar; Go
// has no undefined, so the engine uses a sentinel while nil plays null.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the sentinel matched by the undefined and void keywords.
var Undefined any = undefinedValue{}
