// Package diagnostic collects warnings and errors produced while mapping
// binding headers and running the pipeline stages.
//
// Key capabilities:
//   - Unmatched header warnings with nearest engine header suggestions
//   - Stage failure errors carrying the underlying cause
//   - Skipped stage notes naming the failed stage they depended on
//   - Shadowed adaptor paths when two include roots share a header path
//   - Structured logging of the collected diagnostics
package diagnostic
