//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package local provides the in-process evaluation service.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/service"
	"github.com/contoso/creative-eval/evaluation/status"
)

const defaultRecordParallelism = 4

type local struct {
	registry                  *evaluator.Registry
	recordParallelism         int
	parallelEvaluationEnabled bool

	recordEvalPool     *ants.PoolWithFunc
	recordEvalPoolOnce sync.Once
	recordEvalPoolErr  error
}

// Option configures the local service.
type Option func(*local)

// WithRegistry sets the default evaluator registry.
func WithRegistry(r *evaluator.Registry) Option {
	return func(s *local) { s.registry = r }
}

// WithRecordParallelism sets the default worker pool size.
func WithRecordParallelism(n int) Option {
	return func(s *local) { s.recordParallelism = n }
}

// WithParallelEvaluation enables the worker pool by default.
func WithParallelEvaluation(enabled bool) Option {
	return func(s *local) { s.parallelEvaluationEnabled = enabled }
}

// New creates a local evaluation service.
func New(opt ...Option) (service.Service, error) {
	s := &local{
		registry:          evaluator.NewRegistry(),
		recordParallelism: defaultRecordParallelism,
	}
	for _, o := range opt {
		o(s)
	}
	if s.registry == nil {
		return nil, errors.New("registry is nil")
	}
	return s, nil
}

// Evaluate runs the metric evaluators over the request records and returns the aggregated result.
func (s *local) Evaluate(ctx context.Context, req *service.EvaluateRequest, opt ...service.Option) (*service.EvaluateResult, error) {
	if err := validateEvaluateRequest(req); err != nil {
		return nil, fmt.Errorf("validate evaluate request: %w", err)
	}
	callOpts, err := s.resolveEvaluateOptions(opt...)
	if err != nil {
		return nil, err
	}
	evalResult := &service.EvaluateResult{
		EvalRunID: uuid.NewString(),
		AppName:   req.AppName,
		Status:    status.EvalStatusNotEvaluated,
	}
	if len(req.Records) == 0 {
		evalResult.Summary = map[string]float64{}
		return evalResult, nil
	}
	recordResults, err := s.evaluateRecords(ctx, req, callOpts)
	if err != nil {
		return nil, fmt.Errorf("evaluate records (app=%s): %w", req.AppName, err)
	}
	evalResult.RecordResults = recordResults
	evalResult.Status = status.EvalStatusPassed
	scores := make([]map[string]float64, 0, len(recordResults))
	for _, rr := range recordResults {
		if rr.Status == status.EvalStatusFailed {
			evalResult.Status = status.EvalStatusFailed
		}
		scores = append(scores, rr.Scores)
	}
	summary, err := metric.Summarize(req.Metrics, scores)
	if err != nil {
		return nil, fmt.Errorf("summarize metrics (app=%s): %w", req.AppName, err)
	}
	evalResult.Summary = summary
	evalResult.Rows = metric.RowsFromScores(req.Metrics, scores)
	return evalResult, nil
}

// Close releases the worker pool.
func (s *local) Close() error {
	if s.recordEvalPool != nil {
		s.recordEvalPool.Release()
	}
	return nil
}

func validateEvaluateRequest(req *service.EvaluateRequest) error {
	if req == nil {
		return errors.New("evaluate request is nil")
	}
	if len(req.Metrics) == 0 {
		return errors.New("metrics are empty")
	}
	for _, record := range req.Records {
		if record == nil {
			return errors.New("record is nil")
		}
	}
	return nil
}

func (s *local) resolveEvaluateOptions(opt ...service.Option) (*service.Options, error) {
	callOpts := &service.Options{
		Registry:                  s.registry,
		RecordParallelism:         s.recordParallelism,
		ParallelEvaluationEnabled: s.parallelEvaluationEnabled,
	}
	for _, o := range opt {
		o(callOpts)
	}
	if callOpts.Registry == nil {
		return nil, errors.New("registry is nil")
	}
	if callOpts.ParallelEvaluationEnabled {
		if callOpts.RecordParallelism <= 0 {
			return nil, errors.New("record parallelism must be greater than 0")
		}
		if err := s.ensureRecordEvalPool(callOpts.RecordParallelism); err != nil {
			return nil, err
		}
	}
	return callOpts, nil
}

func (s *local) evaluateRecords(ctx context.Context, req *service.EvaluateRequest, opts *service.Options) ([]*service.RecordResult, error) {
	if opts.ParallelEvaluationEnabled {
		return s.evaluateRecordsParallel(ctx, req, opts)
	}
	return s.evaluateRecordsSerial(ctx, req, opts)
}

func (s *local) evaluateRecordsSerial(ctx context.Context, req *service.EvaluateRequest, opts *service.Options) ([]*service.RecordResult, error) {
	results := make([]*service.RecordResult, 0, len(req.Records))
	for _, record := range req.Records {
		results = append(results, s.evaluateRecord(ctx, record, req.Metrics, opts))
	}
	return results, nil
}

func (s *local) evaluateRecordsParallel(ctx context.Context, req *service.EvaluateRequest, opts *service.Options) ([]*service.RecordResult, error) {
	results := make([]*service.RecordResult, len(req.Records))
	var wg sync.WaitGroup
	for idx, record := range req.Records {
		wg.Add(1)
		param := recordEvalParamPool.Get().(*recordEvalParam)
		param.idx = idx
		param.ctx = ctx
		param.record = record
		param.metrics = req.Metrics
		param.opts = opts
		param.svc = s
		param.results = results
		param.wg = &wg
		if err := s.recordEvalPool.Invoke(param); err != nil {
			wg.Done()
			results[idx] = failedRecordResult(fmt.Errorf("submit evaluation task for record %d: %w", idx, err))
			param.reset()
			recordEvalParamPool.Put(param)
		}
	}
	wg.Wait()
	return results, nil
}

// evaluateRecord runs every requested metric evaluator over one record,
// concurrently per metric. Evaluator failures mark the record failed but do
// not abort the remaining metrics.
func (s *local) evaluateRecord(ctx context.Context, record *evaluator.Record, metrics []*metric.EvalMetric, opts *service.Options) *service.RecordResult {
	scores := make([]*evaluator.Score, len(metrics))
	errs := make([]error, len(metrics))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range metrics {
		i, m := i, m
		if m == nil {
			errs[i] = errors.New("metric is nil")
			continue
		}
		eval, err := opts.Registry.Get(m.Name)
		if err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			score, err := eval.Evaluate(gctx, record)
			if err != nil {
				errs[i] = fmt.Errorf("evaluate metric %s: %w", m.Name, err)
				return nil
			}
			scores[i] = score
			return nil
		})
	}
	_ = g.Wait()
	var merr *multierror.Error
	recordResult := &service.RecordResult{
		Scores: make(map[string]float64, len(metrics)),
		Status: status.EvalStatusPassed,
	}
	for i := range metrics {
		if errs[i] != nil {
			merr = multierror.Append(merr, errs[i])
			continue
		}
		if scores[i] != nil {
			recordResult.Scores[scores[i].MetricName] = scores[i].Value
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		recordResult.Status = status.EvalStatusFailed
		recordResult.ErrorMessage = err.Error()
	}
	return recordResult
}

func failedRecordResult(err error) *service.RecordResult {
	return &service.RecordResult{
		Scores:       map[string]float64{},
		Status:       status.EvalStatusFailed,
		ErrorMessage: err.Error(),
	}
}
