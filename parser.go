package take

import (
	"fmt"
	"strconv"
	"strings"
)

// parse builds the directive tree from a token stream. The grammar:
//
//	program   := statement*
//	statement := query | directive
//	query     := [QUERY] [PIPE accessor+] (';' statement | NEWLINE block?)
//	block     := INDENT statement+ DEDENT
//	directive := save | save each
//	save      := 'save:' keypath NEWLINE
//	save each := 'save each:' keypath NEWLINE INDENT branch+ DEDENT
//	branch    := PIPE accessor+ (';' directive | NEWLINE INDENT directive DEDENT)
//
// A query statement has at least a selector or a pipeline. An indented
// block may not follow a statement introduced by ';'.
func parse(toks []token) ([]node, error) {
	p := &parser{toks: toks}
	nodes, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, p.unexpected(tok, "expected a statement")
	}
	return nodes, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tt tokenType) (token, error) {
	if tok := p.peek(); tok.typ != tt {
		return token{}, p.unexpected(tok, fmt.Sprintf("expected %s", tokenNames[tt]))
	}
	return p.next(), nil
}

func (p *parser) unexpected(tok token, msg string) error {
	return &UnexpectedTokenError{Line: tok.line, Col: tok.col, Token: tok.String(), Msg: msg}
}

func (p *parser) parseBlock() ([]node, error) {
	var nodes []node
	for {
		switch p.peek().typ {
		case tokenDedent, tokenEOF:
			return nodes, nil
		}
		n, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// parseStatement parses one statement. inline is true when the statement
// follows a ';' on the same line, which forbids it from owning an indented
// block.
func (p *parser) parseStatement(inline bool) (node, error) {
	switch tok := p.peek(); tok.typ {
	case tokenQuery, tokenPipe:
		return p.parseQuery(inline)
	case tokenDirective:
		return p.parseDirective(inline)
	default:
		return nil, p.unexpected(tok, "expected a statement")
	}
}

func (p *parser) parseQuery(inline bool) (node, error) {
	q := &queryNode{line: p.peek().line}
	if p.peek().typ == tokenQuery {
		q.selector = p.next().text
	}
	if p.peek().typ == tokenPipe {
		p.next()
		steps, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		q.pipeline = steps
	}

	switch tok := p.peek(); tok.typ {
	case tokenInline:
		p.next()
		child, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		q.children = []node{child}
		q.inline = true
	case tokenNewline:
		p.next()
		if p.peek().typ == tokenIndent {
			if inline {
				return nil, p.unexpected(p.peek(), "indented block after an inline statement")
			}
			p.next()
			children, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokenDedent); err != nil {
				return nil, err
			}
			q.children = children
		}
	default:
		return nil, p.unexpected(tok, "expected an accessor, ';' or end of line")
	}
	return q, nil
}

// parsePipeline consumes accessor tokens until the pipeline ends. Text and
// attribute steps are terminal, so any accessor after one of them is an
// unexpected token.
func (p *parser) parsePipeline() ([]step, error) {
	var steps []step
	terminal := false
	for {
		tok := p.peek()
		switch tok.typ {
		case tokenIndex, tokenText, tokenAttr:
		default:
			if len(steps) == 0 {
				return nil, p.unexpected(tok, "expected an accessor after '|'")
			}
			return steps, nil
		}
		if terminal {
			return nil, p.unexpected(tok, "no accessor may follow a text or attribute step")
		}
		p.next()
		switch tok.typ {
		case tokenIndex:
			i, _ := strconv.Atoi(tok.text)
			steps = append(steps, step{kind: stepIndex, index: i})
		case tokenText:
			steps = append(steps, step{kind: stepText})
			terminal = true
		case tokenAttr:
			steps = append(steps, step{kind: stepAttr, attr: tok.text})
			terminal = true
		}
	}
}

func (p *parser) parseDirective(inline bool) (node, error) {
	tok := p.next()
	switch tok.text {
	case "save":
		return p.parseSave(tok)
	case "save each":
		return p.parseSaveEach(tok, inline)
	default:
		return nil, &InvalidDirectiveError{Line: tok.line, Directive: tok.text}
	}
}

// parseSave builds the selector-less query node a bare save statement
// becomes: it saves the enclosing scope's value at the key path.
func (p *parser) parseSave(dir token) (node, error) {
	kp, err := p.expect(tokenKeyPath)
	if err != nil {
		return nil, err
	}
	path, err := splitKeyPath(kp)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenNewline); err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ == tokenIndent {
		return nil, p.unexpected(tok, "indented block after save")
	}
	return &queryNode{save: path, line: dir.line}, nil
}

func (p *parser) parseSaveEach(dir token, inline bool) (node, error) {
	kp, err := p.expect(tokenKeyPath)
	if err != nil {
		return nil, err
	}
	path, err := splitKeyPath(kp)
	if err != nil {
		return nil, err
	}
	if inline {
		return nil, &TakeSyntaxError{Line: dir.line, Msg: "save each cannot follow ';'"}
	}
	if _, err := p.expect(tokenNewline); err != nil {
		return nil, err
	}
	if p.peek().typ != tokenIndent {
		return nil, &TakeSyntaxError{Line: dir.line, Msg: "save each requires an indented block of '|' branches"}
	}
	p.next()

	var branches []eachBranch
	for p.peek().typ != tokenDedent {
		br, err := p.parseBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, br)
	}
	p.next()
	return &saveEachNode{path: path, branches: branches, line: dir.line}, nil
}

func (p *parser) parseBranch() (eachBranch, error) {
	tok := p.peek()
	if tok.typ != tokenPipe {
		return eachBranch{}, &TakeSyntaxError{Line: tok.line, Msg: "save each branches must start with '|'"}
	}
	p.next()
	steps, err := p.parsePipeline()
	if err != nil {
		return eachBranch{}, err
	}

	br := eachBranch{pipeline: steps}
	switch tok := p.peek(); tok.typ {
	case tokenInline:
		p.next()
		br.save, err = p.parseBranchSave()
		if err != nil {
			return eachBranch{}, err
		}
	case tokenNewline:
		p.next()
		if p.peek().typ != tokenIndent {
			return eachBranch{}, &TakeSyntaxError{Line: tok.line, Msg: "save each branch requires a save"}
		}
		p.next()
		br.save, err = p.parseBranchSave()
		if err != nil {
			return eachBranch{}, err
		}
		if tk := p.peek(); tk.typ != tokenDedent {
			return eachBranch{}, &TakeSyntaxError{Line: tk.line, Msg: "save each branch takes a single save"}
		}
		p.next()
	default:
		return eachBranch{}, p.unexpected(tok, "expected an accessor, ';' or end of line")
	}
	return br, nil
}

func (p *parser) parseBranchSave() (node, error) {
	tok := p.peek()
	if tok.typ != tokenDirective || tok.text != "save" {
		return nil, &TakeSyntaxError{Line: tok.line, Msg: "save each branches may only save"}
	}
	p.next()
	return p.parseSave(tok)
}

func splitKeyPath(tok token) ([]string, error) {
	parts := strings.Split(tok.text, ".")
	for _, part := range parts {
		if part == "" {
			return nil, &TakeSyntaxError{Line: tok.line, Msg: fmt.Sprintf("invalid key path %q", tok.text)}
		}
	}
	return parts, nil
}
