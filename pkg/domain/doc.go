/*
Package domain contains the document model rendered by richtext.

It defines the structured rich-text tree produced by the editor (Nodes and
Marks), the stored content record that carries such a tree, and the small set
of events and issues the renderer reports. The package is kept pure and free
of I/O so every adapter can share it.

# Key Entities

  - Node: a typed element of the document tree (doc, paragraph, heading, lists, text).
  - Mark: inline formatting applied to a text node (bold, italic, strike, link).
  - Input: what the renderer accepts, either a single Node or a Nodes sequence.
  - Content: a stored lead-magnet record whose body is an opaque document.
  - Issue: a non-fatal shape problem found while decoding, validating or rendering.
*/
package domain
