// Package schema validates rich-text documents against the document model's
// invariants.
//
// Attribute payloads are checked with a small type system (string, int,
// custom validators, optional fields). Whole documents are walked by
// ValidateDocument, which reports every problem at once:
//
//	if err := schema.ValidateDocument(doc); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Validation is advisory. The renderer accepts invalid documents and degrades
// gracefully; this package exists so editors, importers and the CLI can report
// problems before content is published.
package schema
