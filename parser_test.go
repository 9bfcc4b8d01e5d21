package take

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []node {
	t.Helper()
	toks, err := scan(src)
	require.NoError(t, err)
	nodes, err := parse(toks)
	require.NoError(t, err)
	return nodes
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := scan(src)
	require.NoError(t, err)
	_, err = parse(toks)
	require.Error(t, err)
	return err
}

func TestParse_QueryTree(t *testing.T) {
	nodes := mustParse(t, "$ nav\n\t$ a | 0 [href]\n\t\tsave: url\n")
	require.Len(t, nodes, 1)

	nav, ok := nodes[0].(*queryNode)
	require.True(t, ok)
	assert.Equal(t, "nav", nav.selector)
	assert.Empty(t, nav.pipeline)
	require.Len(t, nav.children, 1)

	a, ok := nav.children[0].(*queryNode)
	require.True(t, ok)
	assert.Equal(t, "a", a.selector)
	assert.Equal(t, []step{
		{kind: stepIndex, index: 0},
		{kind: stepAttr, attr: "href"},
	}, a.pipeline)
	require.Len(t, a.children, 1)

	save, ok := a.children[0].(*queryNode)
	require.True(t, ok)
	assert.Empty(t, save.selector)
	assert.Empty(t, save.pipeline)
	assert.Equal(t, []string{"url"}, save.save)
}

func TestParse_NegativeIndexStep(t *testing.T) {
	nodes := mustParse(t, "$ a | -1 text\n")
	q := nodes[0].(*queryNode)
	assert.Equal(t, []step{
		{kind: stepIndex, index: -1},
		{kind: stepText},
	}, q.pipeline)
}

func TestParse_DeepKeyPath(t *testing.T) {
	nodes := mustParse(t, "save: a.b.c\n")
	q := nodes[0].(*queryNode)
	assert.Equal(t, []string{"a", "b", "c"}, q.save)
}

func TestParse_InlineChild(t *testing.T) {
	nodes := mustParse(t, "$ h1 | 0 text ; save: value\n")
	q := nodes[0].(*queryNode)
	assert.True(t, q.inline)
	assert.Equal(t, "h1", q.selector)
	require.Len(t, q.children, 1)

	save := q.children[0].(*queryNode)
	assert.Equal(t, []string{"value"}, save.save)
}

func TestParse_AccessorContinuation(t *testing.T) {
	nodes := mustParse(t, "$ h1\n\t| 0 ; save: value\n")
	q := nodes[0].(*queryNode)
	require.Len(t, q.children, 1)

	cont := q.children[0].(*queryNode)
	assert.Empty(t, cont.selector)
	assert.Equal(t, []step{{kind: stepIndex, index: 0}}, cont.pipeline)
	assert.True(t, cont.inline)
}

func TestParse_SaveEach(t *testing.T) {
	nodes := mustParse(t, "$ a\n\tsave each: links\n\t\t| [href]\n\t\t\tsave: url\n\t\t| text ; save: text\n")
	q := nodes[0].(*queryNode)
	require.Len(t, q.children, 1)

	each, ok := q.children[0].(*saveEachNode)
	require.True(t, ok)
	assert.Equal(t, []string{"links"}, each.path)
	require.Len(t, each.branches, 2)

	assert.Equal(t, []step{{kind: stepAttr, attr: "href"}}, each.branches[0].pipeline)
	assert.Equal(t, []string{"url"}, each.branches[0].save.(*queryNode).save)

	assert.Equal(t, []step{{kind: stepText}}, each.branches[1].pipeline)
	assert.Equal(t, []string{"text"}, each.branches[1].save.(*queryNode).save)
}

func TestParse_StepAfterTerminal(t *testing.T) {
	err := parseErr(t, "$ h1 | text [href]\n")
	var tokErr *UnexpectedTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Contains(t, tokErr.Msg, "text or attribute")
}

func TestParse_EmptyPipeline(t *testing.T) {
	err := parseErr(t, "$ h1 |\n")
	var tokErr *UnexpectedTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Contains(t, tokErr.Msg, "accessor after '|'")
}

func TestParse_BlockAfterInline(t *testing.T) {
	err := parseErr(t, "$ div ; $ h1\n\tsave: value\n")
	var tokErr *UnexpectedTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Contains(t, tokErr.Msg, "inline")
}

func TestParse_BlockAfterSave(t *testing.T) {
	err := parseErr(t, "$ h1\n\tsave: value\n\t\tsave: other\n")
	var tokErr *UnexpectedTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Contains(t, tokErr.Msg, "after save")
}

func TestParse_UnknownDirective(t *testing.T) {
	err := parseErr(t, "$ h1\n\thm: fail\n")
	var dirErr *InvalidDirectiveError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, "hm", dirErr.Directive)
	assert.Equal(t, 2, dirErr.Line)
}

func TestParse_SaveEachWithoutBlock(t *testing.T) {
	for _, src := range []string{
		"save each: items\n",
		"save each: items\n$ h1\n\tsave: value\n",
	} {
		err := parseErr(t, src)
		var synErr *TakeSyntaxError
		require.ErrorAs(t, err, &synErr, "source %q", src)
		assert.Contains(t, synErr.Msg, "indented block")
	}
}

func TestParse_SaveEachBranchMustPipe(t *testing.T) {
	err := parseErr(t, "save each: items\n\tsave: value\n")
	var synErr *TakeSyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Msg, "start with '|'")
}

func TestParse_SaveEachBranchRequiresSave(t *testing.T) {
	err := parseErr(t, "$ a\n\tsave each: items\n\t\t| text\n")
	var synErr *TakeSyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Msg, "requires a save")
}

func TestParse_SaveEachBranchSingleSave(t *testing.T) {
	err := parseErr(t, "save each: items\n\t| text\n\t\tsave: a\n\t\tsave: b\n")
	var synErr *TakeSyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Msg, "single save")
}

func TestParse_SaveEachBranchOnlySaves(t *testing.T) {
	for _, src := range []string{
		"save each: items\n\t| text\n\t\t$ h1\n",
		"save each: items\n\t| text ; save each: inner\n",
	} {
		err := parseErr(t, src)
		var synErr *TakeSyntaxError
		require.ErrorAs(t, err, &synErr, "source %q", src)
	}
}

func TestParse_SaveEachInline(t *testing.T) {
	err := parseErr(t, "$ li ; save each: items\n")
	var synErr *TakeSyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Msg, "';'")
}

func TestParse_InvalidKeyPath(t *testing.T) {
	for _, src := range []string{
		"save: a..b\n",
		"save: .a\n",
		"save: a.\n",
	} {
		err := parseErr(t, src)
		var synErr *TakeSyntaxError
		require.ErrorAs(t, err, &synErr, "source %q", src)
		assert.Contains(t, synErr.Msg, "invalid key path")
	}
}

func TestParse_QueryWithoutSaveIsLegal(t *testing.T) {
	nodes := mustParse(t, "$ div\n\t$ a\n")
	require.Len(t, nodes, 1)
	q := nodes[0].(*queryNode)
	require.Len(t, q.children, 1)
	assert.Empty(t, q.children[0].(*queryNode).children)
}

func TestParse_EmptyProgram(t *testing.T) {
	nodes := mustParse(t, "# nothing here\n")
	assert.Empty(t, nodes)
}
