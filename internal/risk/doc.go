// Package risk implements the hybrid flood risk assessment: a threshold
// evaluator over recent crowd reports, an evidence gatherer that assembles
// the predictor's feature vector, a pure reconciler that merges both
// assessments, and the Engine that orchestrates a single query.
//
// Every component degrades instead of failing. Storage errors turn into
// default features or an Unknown threshold level, and a risk query always
// produces a verdict.
package risk
