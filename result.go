package take

// Result is the output mapping a template execution produces. Values are
// nested Results, []Result lists from save each, element set handles,
// strings, or nil. Sibling branches never share structure; mutating one
// execution's Result cannot affect another's.
type Result map[string]any

// put writes v at the key path, creating intermediate mappings for every
// segment but the last. An intermediate that exists but is not a mapping
// is replaced.
func (r Result) put(path []string, v any) {
	m := r
	for _, key := range path[:len(path)-1] {
		child, ok := m[key].(Result)
		if !ok {
			child = Result{}
			m[key] = child
		}
		m = child
	}
	m[path[len(path)-1]] = v
}

// Flatten returns a copy of v with every element set handle replaced by
// its HTML text, which makes results JSON-encodable. Mappings and lists
// are flattened recursively; scalars and nil pass through.
func Flatten(v any) any {
	switch t := v.(type) {
	case Result:
		out := make(Result, len(t))
		for k, val := range t {
			out[k] = Flatten(val)
		}
		return out
	case []Result:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, Flatten(item))
		}
		return out
	case ElementSet:
		h, err := t.Html()
		if err != nil {
			return ""
		}
		return h
	default:
		return v
	}
}
