package take

import "fmt"

type tokenType int

const (
	tokenQuery     tokenType = iota // $ with the selector text that follows
	tokenPipe                       // |
	tokenIndex                      // 0, -1
	tokenText                       // text
	tokenAttr                       // [href]
	tokenDirective                  // save, save each, or an unknown keyword
	tokenKeyPath                    // value, nav.items
	tokenInline                     // ;
	tokenIndent                     // indentation increased
	tokenDedent                     // indentation decreased
	tokenNewline                    // end of a statement line
	tokenEOF                        // end of input
)

var tokenNames = map[tokenType]string{
	tokenQuery:     "query",
	tokenPipe:      "|",
	tokenIndex:     "index",
	tokenText:      "text",
	tokenAttr:      "attribute",
	tokenDirective: "directive",
	tokenKeyPath:   "key path",
	tokenInline:    ";",
	tokenIndent:    "indent",
	tokenDedent:    "dedent",
	tokenNewline:   "end of line",
	tokenEOF:       "end of input",
}

// token is one tagged unit of template source. Line and column are 1-based
// and refer to the start of the token in the original source.
type token struct {
	typ  tokenType
	text string
	line int
	col  int
}

func (t token) String() string {
	name := tokenNames[t.typ]
	if t.text == "" {
		return name
	}
	return fmt.Sprintf("%s %q", name, t.text)
}
