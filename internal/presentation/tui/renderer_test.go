package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHTML() string {
	return richtext.Render(dsl.Doc(
		dsl.Heading(1, dsl.Text("Checklist")),
		dsl.BulletList(
			dsl.Item(dsl.Paragraph(dsl.Text("first").Bold())),
			dsl.Item(dsl.Paragraph(dsl.Text("docs").Link("https://example.com"))),
		),
	).Build())
}

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown(sampleHTML())
	require.NoError(t, err)

	assert.Contains(t, md, "# Checklist")
	assert.Contains(t, md, "**first**")
	assert.Contains(t, md, "[docs](https://example.com)")
	assert.NotContains(t, md, "style=")
}

func TestPreview_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, sampleHTML(), false, 80))
	assert.True(t, strings.HasPrefix(buf.String(), "# Checklist"))
}

func TestPreview_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, sampleHTML(), true, 60))
	assert.Contains(t, buf.String(), "Checklist")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.Equal(t, 80, Width(f))
}
