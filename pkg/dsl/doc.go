/*
Package dsl provides a fluent builder for rich-text documents.

It is the programmatic counterpart of the editor: tests, examples and seed
scripts use it to produce the same trees the editor would persist.

	doc := dsl.Doc(
		dsl.Heading(2, dsl.Text("Your free guide")),
		dsl.Paragraph(
			dsl.Text("Read the "),
			dsl.Text("full checklist").Bold().Link("https://collecty.io/guide"),
		),
		dsl.BulletList(
			dsl.Item(dsl.Paragraph(dsl.Text("Step one"))),
		),
	)

	html := richtext.Render(doc.Build())
*/
package dsl
