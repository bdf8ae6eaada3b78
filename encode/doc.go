// Package encode turns tag trees into bytes or text and back.
//
// The binary form is the wire format: a small header followed by one
// tag document. It preserves everything the tree model promises:
// every node's tag type, the locked element type of lists (including
// empty ones), and compound key order. Documents may optionally be
// gzip- or zstd-compressed; Decode detects compression from the first
// bytes.
//
// The text form is a diagnostic rendering with optional ANSI color; it
// is not parsed back.
package encode
