// Package pdfops implements whole-document PDF operations on in-memory bytes:
// merge, split, page extraction and reordering, rotation, text watermarks,
// lossless compression, password locking and document info.
//
// Operations are backed by pdfcpu, except ImagesToPDF which builds a new
// document with the compose package.
package pdfops
