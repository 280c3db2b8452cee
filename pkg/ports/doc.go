/*
Package ports defines the driven ports (interfaces) for richtext.

These interfaces decouple rendering from storage and transport, so the same
renderer serves the HTTP adapter, the MCP adapter and the CLI regardless of
where content lives.

# Key Interfaces

  - ContentStore: persists and loads content records whose body is a document.
  - Watchable: optional capability of stores that can report changed records.
  - DocumentEngine: what transport adapters need from the renderer.
*/
package ports
