//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package service provides the evaluation service contract.
package service

import (
	"context"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/result"
	"github.com/contoso/creative-eval/evaluation/status"
)

// Service scores evaluation records with the configured metrics.
type Service interface {
	// Evaluate runs the metric evaluators over the request records and
	// returns the aggregated result.
	Evaluate(ctx context.Context, req *EvaluateRequest, opt ...Option) (*EvaluateResult, error)

	// Close releases service resources.
	Close() error
}

// EvaluateRequest represents a request for evaluating a set of records.
type EvaluateRequest struct {
	// AppName is the name of the app the records belong to.
	AppName string `json:"app_name"`
	// Records are the evaluation inputs.
	Records []*evaluator.Record `json:"records"`
	// Metrics are the metrics to evaluate.
	Metrics []*metric.EvalMetric `json:"metrics"`
}

// RecordResult contains the raw metric scores for a single record.
type RecordResult struct {
	// Scores maps metric name to the raw evaluator score.
	Scores map[string]float64 `json:"scores"`
	// Status is the evaluation status of this record.
	Status status.EvalStatus `json:"status"`
	// ErrorMessage contains error details if evaluation failed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// EvaluateResult is the aggregated outcome of one evaluation run.
type EvaluateResult struct {
	// EvalRunID uniquely identifies this run.
	EvalRunID string `json:"eval_run_id"`
	// AppName is the name of the app.
	AppName string `json:"app_name"`
	// Summary maps metric key to the aggregated score.
	Summary map[string]float64 `json:"summary"`
	// Rows contains the per-record metric values.
	Rows []result.Row `json:"rows"`
	// RecordResults contains the raw per-record outcomes.
	RecordResults []*RecordResult `json:"record_results"`
	// Status is the overall evaluation status.
	Status status.EvalStatus `json:"status"`
}

// Options holds per-call evaluation options.
type Options struct {
	// Registry resolves metric names to evaluators.
	Registry *evaluator.Registry
	// RecordParallelism bounds the worker pool for parallel evaluation.
	RecordParallelism int
	// ParallelEvaluationEnabled evaluates records through the worker pool.
	ParallelEvaluationEnabled bool
}

// Option mutates per-call evaluation options.
type Option func(*Options)

// WithRegistry sets the evaluator registry.
func WithRegistry(r *evaluator.Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithRecordParallelism sets the worker pool size for parallel evaluation.
func WithRecordParallelism(n int) Option {
	return func(o *Options) { o.RecordParallelism = n }
}

// WithParallelEvaluation toggles evaluating records through the worker pool.
func WithParallelEvaluation(enabled bool) Option {
	return func(o *Options) { o.ParallelEvaluationEnabled = enabled }
}
