// Package rdf provides a streaming reader and writer for the RDF 1.1 family
// of textual syntaxes: NTriples, NQuads, Turtle and TriG.
//
// The package never materialises a graph in memory. A Reader tokenises one
// of the four syntaxes into RDF events (base URI change, prefix
// declaration, statement, end-of-anonymous-subject) and feeds them to a
// Sink; a Writer is a Sink implementation that emits well-formed text in a
// chosen output syntax, abbreviating with Turtle's `;`/`,`/`[]`/`()` forms
// where the input already expressed them that way. An Environment — a base
// IRI plus an ordered prefix table — sits between reader and writer to
// resolve relative references and compute prefixed names.
package rdf
