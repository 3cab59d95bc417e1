//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package friendliness provides the fixed-score friendliness evaluator.
package friendliness

import (
	"context"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
)

// FixedScore is the score reported for every response.
const FixedScore = 5

type fixed struct{}

// New builds the friendliness evaluator.
func New() evaluator.Evaluator {
	return fixed{}
}

// Name returns the metric name for this evaluator.
func (fixed) Name() string {
	return metric.MetricFriendliness
}

// Description describes what this evaluator checks.
func (fixed) Description() string {
	return "Reports a fixed friendliness score for the response"
}

// Evaluate returns the fixed friendliness score regardless of input.
func (fixed) Evaluate(ctx context.Context, record *evaluator.Record) (*evaluator.Score, error) {
	return &evaluator.Score{MetricName: metric.MetricFriendliness, Value: FixedScore}, nil
}
