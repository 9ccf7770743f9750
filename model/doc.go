// Package model defines the normalized, format-agnostic document
// representation consumed by the comparison engines.
//
// A Document is an ordered sequence of Blocks (paragraphs, tables, images)
// plus document-level metadata such as page and sheet counts. Parsers for
// concrete container formats (docx, xlsx, pdf, html) produce this model;
// nothing downstream of the parsers knows about container formats.
//
// Documents are treated as immutable once parsed. A comparison request owns
// its two Document instances outright, so no synchronization is required.
package model
