package take

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The scanner works line by line. A first pass strips blank lines and
// full-line comments and measures each remaining line's indentation. A
// second pass walks those lines with an indentation stack, emitting indent
// and dedent tokens as depth changes and tokenizing each line's statement.
//
// The depth of the first content line seeds the stack, so templates pasted
// into indented string literals scan the same as flush-left ones. A line
// deeper than the stack top opens one block. A shallower line closes one
// block per popped level and must land exactly on a depth still on the
// stack.

// scanLine is one content line of template source, with its indentation
// stripped and measured. Blank lines and comments never become scanLines.
type scanLine struct {
	text   string
	indent int
	num    int
}

func scan(src string) ([]token, error) {
	return lexLines(scanLines(src))
}

// scanLines splits source into content lines. A line whose first
// non-whitespace byte is '#' is a comment and is dropped no matter how it
// is indented. Spaces and tabs both count one column of indentation.
func scanLines(src string) []scanLine {
	var out []scanLine
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		rest := strings.TrimRight(line[indent:], " \t")
		if rest == "" || rest[0] == '#' {
			continue
		}
		out = append(out, scanLine{text: rest, indent: indent, num: i + 1})
	}
	return out
}

// lexLines converts content lines into a token stream, bracketing nested
// blocks with indent and dedent tokens. The stream always ends with the
// dedents for any still-open blocks followed by a single EOF token.
func lexLines(lines []scanLine) ([]token, error) {
	var toks []token
	if len(lines) == 0 {
		return append(toks, token{typ: tokenEOF, line: 1, col: 1}), nil
	}

	stack := []int{lines[0].indent}
	for _, ln := range lines {
		top := stack[len(stack)-1]
		switch {
		case ln.indent > top:
			stack = append(stack, ln.indent)
			toks = append(toks, token{typ: tokenIndent, line: ln.num, col: ln.indent + 1})
		case ln.indent < top:
			for len(stack) > 0 && ln.indent < stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
				toks = append(toks, token{typ: tokenDedent, line: ln.num, col: ln.indent + 1})
			}
			if len(stack) == 0 || stack[len(stack)-1] != ln.indent {
				return nil, &ScanError{Line: ln.num, Col: ln.indent + 1, Msg: "inconsistent indentation"}
			}
		}

		var err error
		toks, err = lexStatement(toks, ln.text, ln.num, ln.indent)
		if err != nil {
			return nil, err
		}
		toks = append(toks, token{typ: tokenNewline, line: ln.num, col: ln.indent + len(ln.text) + 1})
	}

	end := lines[len(lines)-1].num + 1
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		toks = append(toks, token{typ: tokenDedent, line: end, col: 1})
	}
	return append(toks, token{typ: tokenEOF, line: end, col: 1}), nil
}

// lexStatement tokenizes one statement. Statements open with '$' (query),
// '|' (accessor pipeline), ':' (the save alias), or a directive keyword
// ending in ':'. An inline ';' hands the rest of the line back to
// lexStatement as a nested statement. off is the number of columns before
// text on the original line.
func lexStatement(toks []token, text string, num, off int) ([]token, error) {
	col := off + 1
	switch c := text[0]; {
	case c == '$':
		rest := text[1:]
		stop := len(rest)
		for i := 0; i < len(rest); i++ {
			if rest[i] == '|' || rest[i] == ';' {
				stop = i
				break
			}
		}
		sel := strings.TrimSpace(rest[:stop])
		toks = append(toks, token{typ: tokenQuery, text: sel, line: num, col: col})
		if stop == len(rest) {
			return toks, nil
		}
		return lexStatement(toks, rest[stop:], num, off+1+stop)

	case c == '|':
		toks = append(toks, token{typ: tokenPipe, line: num, col: col})
		rest := text[1:]
		section := rest
		semi := strings.IndexByte(rest, ';')
		if semi >= 0 {
			section = rest[:semi]
		}
		var err error
		toks, err = lexAccessors(toks, section, num, off+1)
		if err != nil {
			return nil, err
		}
		if semi < 0 {
			return toks, nil
		}
		return lexStatement(toks, rest[semi:], num, off+1+semi)

	case c == ';':
		toks = append(toks, token{typ: tokenInline, line: num, col: col})
		j := 1
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j >= len(text) {
			return toks, nil
		}
		return lexStatement(toks, text[j:], num, off+j)

	case c == ':':
		toks = append(toks, token{typ: tokenDirective, text: "save", line: num, col: col})
		return lexKeyPath(toks, text[1:], num, off+1)

	case isIdentStart(rune(c)):
		i := 0
		var parts []string
		for {
			if i >= len(text) || !isIdentStart(rune(text[i])) {
				return nil, &ScanError{Line: num, Col: off + i + 1, Msg: "malformed statement: expected ':'"}
			}
			j := i
			for j < len(text) && isIdentChar(rune(text[j])) {
				j++
			}
			parts = append(parts, text[i:j])
			k := j
			for k < len(text) && (text[k] == ' ' || text[k] == '\t') {
				k++
			}
			if k < len(text) && text[k] == ':' {
				toks = append(toks, token{typ: tokenDirective, text: strings.Join(parts, " "), line: num, col: col})
				return lexKeyPath(toks, text[k+1:], num, off+k+1)
			}
			if k >= len(text) {
				return nil, &ScanError{Line: num, Col: off + k + 1, Msg: "malformed statement: expected ':'"}
			}
			i = k
		}

	default:
		word := text
		if i := strings.IndexAny(text, " \t"); i >= 0 {
			word = text[:i]
		}
		return nil, &ScanError{Line: num, Col: col, Msg: fmt.Sprintf("unrecognized statement %q", word)}
	}
}

// lexAccessors tokenizes the whitespace-separated accessor segments of a
// pipe section: a signed integer index, the keyword text, or an attribute
// name in brackets. Anything else fails the scan.
func lexAccessors(toks []token, section string, num, off int) ([]token, error) {
	i := 0
	for i < len(section) {
		for i < len(section) && (section[i] == ' ' || section[i] == '\t') {
			i++
		}
		if i >= len(section) {
			break
		}
		start := i
		for i < len(section) && section[i] != ' ' && section[i] != '\t' {
			i++
		}
		f := section[start:i]
		fcol := off + start + 1
		switch {
		case f == "text":
			toks = append(toks, token{typ: tokenText, text: "text", line: num, col: fcol})
		case len(f) > 2 && f[0] == '[' && f[len(f)-1] == ']':
			toks = append(toks, token{typ: tokenAttr, text: f[1 : len(f)-1], line: num, col: fcol})
		default:
			if _, err := strconv.Atoi(f); err != nil {
				return nil, &ScanError{Line: num, Col: fcol, Msg: fmt.Sprintf("malformed accessor %q", f)}
			}
			toks = append(toks, token{typ: tokenIndex, text: f, line: num, col: fcol})
		}
	}
	return toks, nil
}

// lexKeyPath tokenizes the single key path word a directive takes as its
// payload. Validity of the path segments is the parser's concern.
func lexKeyPath(toks []token, rest string, num, off int) ([]token, error) {
	j := 0
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	if j >= len(rest) {
		return nil, &ScanError{Line: num, Col: off + j + 1, Msg: "missing key path"}
	}
	start := j
	for j < len(rest) && rest[j] != ' ' && rest[j] != '\t' {
		j++
	}
	toks = append(toks, token{typ: tokenKeyPath, text: rest[start:j], line: num, col: off + start + 1})
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	if j < len(rest) {
		return nil, &ScanError{Line: num, Col: off + j + 1, Msg: "unexpected content after key path"}
	}
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
