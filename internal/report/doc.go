// Package report renders scan results.
//
// Results are gathered into a Summary, one Entry per scanned page, and
// written by one of the Writer implementations:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter and FullJSONWriter: JSON for tools
//   - MarkdownWriter: Markdown for sharing, with a status chart
package report
