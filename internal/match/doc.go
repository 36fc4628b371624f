// Package match provides edit-distance helpers used to suggest the intended
// spelling of an unrecognized attribute key or field name.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Normalize: folds case and drops separators before comparing
//   - Suggest: picks the closest known name within a distance budget
package match
