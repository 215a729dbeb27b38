// Package match maps binding headers to the engine headers they were
// generated from, using textual heuristics over an in-memory corpus.
//
// Key functions:
//   - NewCandidate: derives the lower-cased and underscore-stripped search names
//   - Patterns: literal declaration patterns searched for a candidate
//   - Mapper.Map: first-match-wins search over the corpus in path order
//   - Suggest: nearest engine header names for an unmatched header
package match
