package schema

import (
	"testing"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	doc := dsl.Doc(
		dsl.Heading(2, dsl.Text("Title")),
		dsl.Paragraph(dsl.Text("x").Bold().Link("https://collecty.io")),
		dsl.OrderedList(dsl.Item(dsl.Paragraph(dsl.Text("a")))),
	).Build()

	assert.NoError(t, ValidateDocument(doc))
	assert.NoError(t, ValidateDocument(nil))
	assert.NoError(t, ValidateDocument(domain.Nodes{}))
}

func TestValidateDocument_Violations(t *testing.T) {
	doc := dsl.Doc(
		dsl.Heading(9, dsl.Text("too deep")),
		dsl.Paragraph(dsl.Text("x").Mark("highlight", nil)),
		dsl.Paragraph(dsl.Text("y").Mark(domain.MarkLink, nil)),
		dsl.Block("blockquote"),
	).Build()
	doc.Content = append(doc.Content, domain.Node{Type: domain.NodeParagraph, Text: "stray"})

	err := ValidateDocument(doc)
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 5)

	first := errs[0].(*ValidationError)
	assert.Equal(t, "$.content[0]", first.Path)
	assert.Equal(t, "level", first.Key)

	assert.Equal(t, "$.content[1].content[0].marks[0]", errs[1].(*ValidationError).Path)
	assert.Equal(t, domain.IssueUnknownMark, errs[1].(*ValidationError).Kind)

	assert.Equal(t, "href", errs[2].(*ValidationError).Key)
	assert.Equal(t, domain.IssueUnknownNode, errs[3].(*ValidationError).Kind)
	assert.Equal(t, "$.content[4]", errs[4].(*ValidationError).Path)
}

func TestValidateDocument_TextWithContent(t *testing.T) {
	n := domain.Node{Type: domain.NodeText, Text: "x", Content: []domain.Node{{Type: domain.NodeText, Text: "y"}}}
	err := ValidateDocument(n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not have content")
}

func TestValidateDocument_Malformed(t *testing.T) {
	seq := domain.Nodes{{Type: domain.NodeText, Malformed: true}}
	errs := ValidationErrors(ValidateDocument(seq))
	require.Len(t, errs, 1)
	assert.Equal(t, "$[0]", errs[0].(*ValidationError).Path)
}

func TestIssues(t *testing.T) {
	err := ValidateDocument(dsl.Doc(dsl.Block("callout")).Build())
	issues := Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueUnknownNode, issues[0].Kind)
	assert.Equal(t, "$.content[0]", issues[0].Path)

	assert.Nil(t, Issues(nil))
}

func TestAggregateError_Message(t *testing.T) {
	err := &AggregateError{Errors: []error{
		&ValidationError{Path: "$", Reason: "missing type"},
		&ValidationError{Path: "$.content[0]", Key: "level", Reason: "bad", Value: "x"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "2 validation errors")
	assert.Contains(t, msg, `$.content[0] field "level": bad (got string)`)
}
