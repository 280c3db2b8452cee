/*
Package richtext renders Collecty rich-text documents to HTML fragments.

Documents are the JSON trees produced by the block editor: a tree of typed
nodes (doc, paragraph, heading, lists) whose leaves are text nodes carrying
formatting marks (bold, italic, strike, link). The renderer is a pure
function of its input. It performs no I/O and never fails: malformed
subtrees render as nothing and are reported as issues instead.

# Usage

	html := richtext.Render(dsl.Doc(
		dsl.Heading(2, dsl.Text("Welcome")),
		dsl.Paragraph(dsl.Text("Read the "), dsl.Text("guide").Link("https://example.com")),
	).Build())

Stored bodies are rendered straight from JSON:

	r := richtext.New(
		richtext.WithLogger(logger),
		richtext.WithLinkPolicy(richtext.DefaultLinkPolicy()),
		richtext.WithHooks(metrics.Hooks()),
	)
	res, err := r.RenderJSON(ctx, content.Body)

# Architecture

The module follows a hexagonal layout:

  - pkg/domain: the document model, issues and events.
  - pkg/escape: the HTML escaper.
  - pkg/codec, pkg/schema, pkg/dsl: decoding, validation and building documents.
  - pkg/ports: the content store boundary and its contract suite.
  - pkg/adapters: memory, file and redis stores plus the HTTP and MCP transports.
  - cmd/richtext: the command line interface.
*/
package richtext
