package take

// The parser produces an immutable tree of directive nodes. Two variants
// exist: a query node selects and pipes a value, optionally saves it, and
// optionally owns a nested block; a save each node accumulates one output
// mapping per matched element into an ordered list. Nodes never mutate
// after parsing, so one tree serves any number of concurrent executions.

type node interface {
	run(in *interp)
}

type stepKind int

const (
	stepIndex stepKind = iota // signed element index
	stepText                  // text content, terminal
	stepAttr                  // attribute value, terminal
)

// step is one accessor in a pipeline. Steps apply left to right; text and
// attribute steps end the pipeline.
type step struct {
	kind  stepKind
	index int
	attr  string
}

// queryNode narrows the current value with an optional CSS selector and an
// optional accessor pipeline, then saves the result, descends into a child
// block with it, or both. A node with no selector operates on the
// enclosing scope's value directly, which is how accessor continuations
// and bare saves parse.
type queryNode struct {
	selector string
	pipeline []step
	save     []string
	children []node
	inline   bool
	line     int
}

// saveEachNode runs its branches once per element of the current set, each
// time into a fresh mapping, and writes the ordered list of mappings at
// its key path. An empty set writes an empty list.
type saveEachNode struct {
	path     []string
	branches []eachBranch
	line     int
}

// eachBranch applies its pipeline to the single element under iteration
// and hands the value to its save node.
type eachBranch struct {
	pipeline []step
	save     node
}
