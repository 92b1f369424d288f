// Package htmlsift provides configuration-driven content extraction from
// HTML documents. Extraction rules map domain wildcards and URL path globs
// to CSS selectors; the text of the matched nodes becomes the segments that
// downstream indexing consumes, together with a content digest and enough
// metadata to trace every segment back to its place in the document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, glob/, yaml/).
package htmlsift
