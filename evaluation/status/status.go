//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package status defines evaluation status values.
package status

// EvalStatus is the outcome of an evaluation.
type EvalStatus int

const (
	// EvalStatusNotEvaluated means no evaluation was performed.
	EvalStatusNotEvaluated EvalStatus = iota
	// EvalStatusPassed means the score met the threshold.
	EvalStatusPassed
	// EvalStatusFailed means the score missed the threshold or the evaluation errored.
	EvalStatusFailed
)

// String returns the status name.
func (s EvalStatus) String() string {
	switch s {
	case EvalStatusPassed:
		return "passed"
	case EvalStatusFailed:
		return "failed"
	default:
		return "not_evaluated"
	}
}

// ForScore maps a score against a threshold.
func ForScore(score, threshold float64) EvalStatus {
	if score >= threshold {
		return EvalStatusPassed
	}
	return EvalStatusFailed
}
