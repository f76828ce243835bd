// Package domain models flood reports, weather telemetry, and risk verdicts.
//
// # Risk levels
//
// Risk is a three-level ordered scale (Low < Medium < High) with Unknown as a
// separate "could not be determined" sentinel. Unknown is not part of the
// ordering: during reconciliation it is treated as absent evidence, never as
// a level that can promote or suppress a genuine signal.
//
// # Feature vector
//
// FeatureVector is the contract between evidence gathering and prediction.
// Its field order is fixed: [temp_c, humidity_pct, rain_1h_mm, pressure_hpa,
// nearby_report_count, rainfall_next_3h_mm]. Model artifacts are trained
// against this exact order; Values() is the only sanctioned way to flatten it.
//
// # Water levels
//
// Crowd reports carry an optional water-level observation from a fixed
// vocabulary (Ankle-deep through Above head). Which of those count as
// "high water" is configuration, not domain knowledge: the default set is
// everything from Knee-deep up.
//
// # ID generation
//
// Report IDs are deterministic SHA-256 hashes of the submission's key fields.
// Resubmitting the identical report at the identical time yields the same ID,
// which keeps downstream consumers idempotent without coordination.
package domain
