package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingAttrs(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		attrs, err := Node{Type: NodeHeading}.HeadingAttrs()
		require.NoError(t, err)
		assert.Equal(t, 0, attrs.Level)
	})

	t.Run("json number", func(t *testing.T) {
		attrs, err := Node{Type: NodeHeading, Attrs: map[string]any{"level": float64(2)}}.HeadingAttrs()
		require.NoError(t, err)
		assert.Equal(t, 2, attrs.Level)
	})

	t.Run("extra keys ignored", func(t *testing.T) {
		attrs, err := Node{Type: NodeHeading, Attrs: map[string]any{"level": 3, "textAlign": "left"}}.HeadingAttrs()
		require.NoError(t, err)
		assert.Equal(t, 3, attrs.Level)
	})

	t.Run("string level", func(t *testing.T) {
		_, err := Node{Type: NodeHeading, Attrs: map[string]any{"level": "two"}}.HeadingAttrs()
		assert.Error(t, err)
	})
}

func TestLinkAttrs(t *testing.T) {
	attrs, err := Mark{Type: MarkLink, Attrs: map[string]any{"href": "https://collecty.io", "target": "_blank"}}.LinkAttrs()
	require.NoError(t, err)
	assert.Equal(t, "https://collecty.io", attrs.Href)
	assert.Equal(t, "_blank", attrs.Target)

	_, err = Mark{Type: MarkLink, Attrs: map[string]any{"href": []any{"x"}}}.LinkAttrs()
	assert.Error(t, err)
}

func TestShape(t *testing.T) {
	var nilNode *Node
	assert.Equal(t, "empty", Shape(nil))
	assert.Equal(t, "empty", Shape(nilNode))
	assert.Equal(t, "node", Shape(Node{Type: NodeDoc}))
	assert.Equal(t, "node", Shape(&Node{Type: NodeDoc}))
	assert.Equal(t, "sequence", Shape(Nodes{}))
}

func TestContentClone(t *testing.T) {
	c := &Content{ID: "guide", Body: []byte(`{"type":"doc"}`)}
	cp := c.Clone()
	cp.Body[0] = '['
	assert.Equal(t, byte('{'), c.Body[0])

	var empty *Content
	assert.Nil(t, empty.Clone())
}
