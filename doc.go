/*
Package take compiles and executes take templates, a small indentation
sensitive language for pulling structured data out of HTML documents.

A template declares what to select, how to narrow it, and where to put it.
It compiles once and can then run against any number of documents:

	tmpl := take.MustNew(`
	    $ h1 | text
	        save: title
	    $ nav a
	        save each: nav
	            | [href]
	                save: url
	            | text
	                save: text
	`)
	data, err := tmpl.Exec(markup)

which for a suitable document yields

	{
	    "title": "Text in h1",
	    "nav": [
	        {"url": "/local/a", "text": "first nav item"},
	        {"url": "/local/b", "text": "second nav item"}
	    ]
	}

Statements

A query statement opens with '$' followed by a CSS selector. On its own
it only narrows the current context; indent the lines below it to work
within the narrowed context, and dedent to return to the enclosing one:

	$ section
	    $ ul | [id]
	        save: value

An optional '|' introduces an accessor pipeline applied to the selection,
left to right: a signed integer index narrows to one element (negative
counts from the end), the keyword text extracts text content, and an
attribute name in brackets extracts that attribute's value. Text and
attribute accessors end the pipeline.

A statement may also open with '|' alone, applying a pipeline to the
enclosing context without a new selection:

	$ h1
	    | 0 ; save: value

The save directive writes the current value into the result at a
dot-separated key path, creating nested mappings along the way. A bare
':' is shorthand for 'save:'. The save each directive iterates the
current selection, building one mapping per element from its '|'
branches, and stores the ordered list.

A ';' treats the rest of the line as the nested block of one statement,
so small templates stay on one line:

	$ h1 | 0 text ; save: value

Lines whose first non-whitespace character is '#' are comments. Blank
lines are ignored. The indentation of the first statement sets the base
depth, so templates embedded in indented string literals work as written.

Absent data

Execution never fails because a document is missing something. A selector
that matches nothing yields the empty selection, indexing out of range
yields the empty selection, the text of an empty selection is "", and a
missing attribute is nil. A save each over an empty selection stores an
empty list, never omitting the key.

Base URLs

When a base URL is set, relative values of URL-carrying attributes
(href and src unless configured otherwise) resolve against it; absolute
values pass through. The base can be fixed at compile time with
take.BaseURL or per execution with take.ExecBaseURL, the per-execution
value winning.

Errors

All faults are compile faults, reported by New as one of four types:
ScanError for lines that do not tokenize, UnexpectedTokenError for tokens
the grammar forbids in that position, InvalidDirectiveError for unknown
directive keywords, and TakeSyntaxError for structural problems such as a
save each without branches. All four implement CompileError and carry the
source position.
*/
package take
