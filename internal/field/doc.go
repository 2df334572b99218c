// Package field evaluates the electrostatic field and potential of a set of
// unit point charges by superposition.
//
//   - [Field] and [Potential]: full O(n) sums over a [charge.Set]
//   - [FieldChange] and [PotentialChange]: O(1) correction when one charge moves
//   - [Sample]: a cached evaluation that can absorb registry events
//
// Evaluating exactly at a charge yields Inf or NaN. Nothing here guards
// against it; callers decide what to do with non-finite values.
package field
