package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/pkg/adapters/memory"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.Content{
		ID:   "guide",
		Body: json.RawMessage(`{"type":"paragraph","content":[{"type":"text","text":"Hi & bye"}]}`),
	}))
	return NewServer(richtext.New(), WithStore(store)), store
}

func TestHandleRender(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleRender(context.Background(), mcp.CallToolRequest{}, documentArgs{
		Document: `[{"type":"text","text":"a","marks":[{"type":"italic"}]},{"type":"text","text":"b","marks":[{"type":"sparkle"}]}]`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<em>a</em>b", res.HTML)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, domain.IssueUnknownMark, res.Issues[0].Kind)

	_, err = s.handleRender(context.Background(), mcp.CallToolRequest{}, documentArgs{Document: `{`})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestHandleValidate(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, documentArgs{Document: `null`})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.NotNil(t, res.Issues)

	res, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, documentArgs{
		Document: `{"type":"text","text":"x","marks":[{"type":"link","attrs":{"href":7}}]}`,
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestHandleContentHTML(t *testing.T) {
	s, _ := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_content_html"
	req.Params.Arguments = map[string]any{"id": "guide"}

	res, err := s.handleContentHTML(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, `<p style="margin-bottom: 0.75rem; line-height: 1.5;">Hi &amp; bye</p>`, text.Text)

	req.Params.Arguments = map[string]any{"id": "missing"}
	res, err = s.handleContentHTML(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadContentResource(t *testing.T) {
	s, _ := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "content://guide"

	contents, err := s.readContent(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/html", text.MIMEType)
	assert.Contains(t, text.Text, "Hi &amp; bye")

	req.Params.URI = "other://guide"
	_, err = s.readContent(context.Background(), req)
	assert.Error(t, err)
}
