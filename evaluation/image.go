//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"context"
	"fmt"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/evaluator/safety"
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/result"
	"github.com/contoso/creative-eval/evaluation/service"
	"github.com/contoso/creative-eval/evaluation/service/local"
)

const imageAppName = "image_eval"

// ImageEvaluator scores generated images with the multimodal content safety
// annotators, including protected material detection. In lab mode (the
// default) Run returns the fixed result literal without invoking them.
type ImageEvaluator struct {
	scope    ProjectScope
	registry *evaluator.Registry
	metrics  []*metric.EvalMetric
	svc      service.Service
	live     bool
}

// NewImageEvaluator constructs the multimodal safety evaluator set.
func NewImageEvaluator(scope ProjectScope, opt ...Option) (*ImageEvaluator, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("validate project scope: %w", err)
	}
	opts := newOptions(opt...)
	cred, err := resolveCredential(opts)
	if err != nil {
		return nil, err
	}
	client, err := newSafetyClient(scope, cred, opts)
	if err != nil {
		return nil, err
	}
	registry := evaluator.NewRegistry()
	for _, name := range []string{
		metric.MetricViolence,
		metric.MetricSelfHarm,
		metric.MetricHateUnfairness,
		metric.MetricSexual,
		metric.MetricProtectedMaterial,
	} {
		eval, err := safety.NewMultimodal(name, client)
		if err != nil {
			return nil, fmt.Errorf("create %s evaluator: %w", name, err)
		}
		if err := registry.Register(name, eval); err != nil {
			return nil, err
		}
	}
	localOpts := []local.Option{
		local.WithRegistry(registry),
		local.WithParallelEvaluation(opts.parallelEnabled),
	}
	if opts.recordParallelism > 0 {
		localOpts = append(localOpts, local.WithRecordParallelism(opts.recordParallelism))
	}
	svc, err := local.New(localOpts...)
	if err != nil {
		return nil, fmt.Errorf("create evaluation service: %w", err)
	}
	return &ImageEvaluator{
		scope:    scope,
		registry: registry,
		metrics:  metric.DefaultImageMetrics(),
		svc:      svc,
		live:     opts.live,
	}, nil
}

// Registry exposes the constructed evaluators.
func (e *ImageEvaluator) Registry() *evaluator.Registry {
	return e.registry
}

// Run evaluates the records. Lab mode returns the fixed image result literal
// regardless of input.
func (e *ImageEvaluator) Run(ctx context.Context, records []*evaluator.Record) (*result.Result, error) {
	if !e.live {
		return labImageResult(), nil
	}
	evalResult, err := e.svc.Evaluate(ctx, &service.EvaluateRequest{
		AppName: imageAppName,
		Records: records,
		Metrics: e.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate image records: %w", err)
	}
	res := result.New(studioURL(e.scope, evalResult.EvalRunID))
	res.Metrics = evalResult.Summary
	res.Rows = evalResult.Rows
	return res, nil
}

// Close releases the underlying evaluation service.
func (e *ImageEvaluator) Close() error {
	return e.svc.Close()
}
