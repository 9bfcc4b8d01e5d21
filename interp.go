package take

import (
	"net/url"

	"github.com/takedsl/take/document"
)

// scope binds the value under inspection to the mapping saves write into
// and the base URL in effect. Entering a nested block pushes a scope that
// shares the parent's mapping; each save each iteration pushes one with a
// fresh mapping. Popping restores the parent scope exactly.
type scope struct {
	value any
	out   Result
	base  *url.URL
}

// interp executes one directive tree over one document. Every execution
// owns its interp and stack, which is what lets a compiled template run
// from many goroutines at once.
type interp struct {
	root     ElementSet
	urlAttrs map[string]struct{}
	stack    []scope
}

func (in *interp) push(sc scope) {
	in.stack = append(in.stack, sc)
}

func (in *interp) pop() {
	in.stack = in.stack[:len(in.stack)-1]
}

func (in *interp) cur() scope {
	return in.stack[len(in.stack)-1]
}

func (in *interp) runAll(nodes []node) {
	for _, n := range nodes {
		n.run(in)
	}
}

// asSet narrows a scope value to an element set. Values produced by
// terminal accessors have no elements, so they narrow to the empty set.
func (in *interp) asSet(v any) ElementSet {
	if s, ok := v.(ElementSet); ok {
		return s
	}
	return in.root.Eq(in.root.Len())
}

// apply runs pipeline steps left to right. Absence degrades at every
// stage rather than failing: an out-of-range index yields the empty set,
// the text of nothing is "", a missing attribute is nil.
func (in *interp) apply(steps []step, v any) any {
	for _, st := range steps {
		switch st.kind {
		case stepIndex:
			v = in.asSet(v).Eq(st.index)
		case stepText:
			v = in.asSet(v).Text()
		case stepAttr:
			val, ok := in.asSet(v).Attr(st.attr)
			if !ok {
				v = nil
			} else {
				v = in.resolveAttr(st.attr, val)
			}
		}
	}
	return v
}

// resolveAttr joins URL-carrying attribute values against the effective
// base URL. Absolute values and attributes outside the configured set
// pass through.
func (in *interp) resolveAttr(name, val string) string {
	base := in.cur().base
	if base == nil {
		return val
	}
	if _, ok := in.urlAttrs[name]; !ok {
		return val
	}
	return document.ResolveURL(base, val)
}

func (q *queryNode) run(in *interp) {
	sc := in.cur()
	v := sc.value
	if q.selector != "" {
		v = in.asSet(v).Select(q.selector)
	}
	v = in.apply(q.pipeline, v)
	if q.save != nil {
		sc.out.put(q.save, v)
	}
	if len(q.children) > 0 {
		in.push(scope{value: v, out: sc.out, base: sc.base})
		in.runAll(q.children)
		in.pop()
	}
}

func (n *saveEachNode) run(in *interp) {
	sc := in.cur()
	set := in.asSet(sc.value)

	items := make([]Result, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		el := set.Eq(i)
		item := Result{}
		in.push(scope{value: el, out: item, base: sc.base})
		for _, br := range n.branches {
			v := in.apply(br.pipeline, any(el))
			in.push(scope{value: v, out: item, base: sc.base})
			br.save.run(in)
			in.pop()
		}
		in.pop()
		items = append(items, item)
	}
	sc.out.put(n.path, items)
}
