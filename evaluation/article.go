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

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/evaluator/friendliness"
	"github.com/contoso/creative-eval/evaluation/evaluator/quality"
	"github.com/contoso/creative-eval/evaluation/evaluator/safety"
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/result"
	"github.com/contoso/creative-eval/evaluation/service"
	"github.com/contoso/creative-eval/evaluation/service/local"
)

const articleAppName = "article_eval"

// ArticleEvaluator scores generated articles with the quality judges, the
// content safety annotators and the friendliness evaluator. In lab mode
// (the default) Run returns the fixed result literal without invoking them.
type ArticleEvaluator struct {
	cfg      ModelConfig
	scope    ProjectScope
	registry *evaluator.Registry
	metrics  []*metric.EvalMetric
	svc      service.Service
	live     bool
}

// NewArticleEvaluator constructs the article evaluator set.
func NewArticleEvaluator(cfg ModelConfig, scope ProjectScope, opt ...Option) (*ArticleEvaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate model config: %w", err)
	}
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("validate project scope: %w", err)
	}
	opts := newOptions(opt...)
	cred, err := resolveCredential(opts)
	if err != nil {
		return nil, err
	}
	registry, err := buildArticleRegistry(cfg, scope, cred, opts)
	if err != nil {
		return nil, err
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
	metrics := metric.DefaultArticleMetrics()
	metrics = append(metrics, &metric.EvalMetric{
		Name:        metric.MetricFriendliness,
		Key:         metric.ScoreKey(metric.MetricFriendliness),
		Threshold:   3,
		Aggregation: metric.AggregationMean,
		Interval:    &metric.QualityInterval,
		SummaryOnly: true,
	})
	return &ArticleEvaluator{
		cfg:      cfg,
		scope:    scope,
		registry: registry,
		metrics:  metrics,
		svc:      svc,
		live:     opts.live,
	}, nil
}

// Registry exposes the constructed evaluators.
func (e *ArticleEvaluator) Registry() *evaluator.Registry {
	return e.registry
}

// Run evaluates the records. Lab mode returns the fixed article result
// literal regardless of input.
func (e *ArticleEvaluator) Run(ctx context.Context, records []*evaluator.Record) (*result.Result, error) {
	if !e.live {
		return labArticleResult(), nil
	}
	evalResult, err := e.svc.Evaluate(ctx, &service.EvaluateRequest{
		AppName: articleAppName,
		Records: records,
		Metrics: e.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate article records: %w", err)
	}
	res := result.New(studioURL(e.scope, evalResult.EvalRunID))
	res.Metrics = evalResult.Summary
	res.Rows = evalResult.Rows
	return res, nil
}

// Close releases the underlying evaluation service.
func (e *ArticleEvaluator) Close() error {
	return e.svc.Close()
}

func buildArticleRegistry(cfg ModelConfig, scope ProjectScope, cred azcore.TokenCredential, opts *options) (*evaluator.Registry, error) {
	registry := evaluator.NewRegistry()
	judgeCfg := quality.Config{
		Deployment: cfg.Deployment,
		APIVersion: cfg.APIVersion,
		Endpoint:   cfg.Endpoint,
	}
	for _, name := range []string{
		metric.MetricRelevance,
		metric.MetricFluency,
		metric.MetricCoherence,
		metric.MetricGroundedness,
	} {
		eval, err := quality.New(name, judgeCfg, cred)
		if err != nil {
			return nil, fmt.Errorf("create %s evaluator: %w", name, err)
		}
		if err := registry.Register(name, eval); err != nil {
			return nil, err
		}
	}
	client, err := newSafetyClient(scope, cred, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{
		metric.MetricViolence,
		metric.MetricSelfHarm,
		metric.MetricHateUnfairness,
		metric.MetricSexual,
	} {
		eval, err := safety.New(name, client)
		if err != nil {
			return nil, fmt.Errorf("create %s evaluator: %w", name, err)
		}
		if err := registry.Register(name, eval); err != nil {
			return nil, err
		}
	}
	if err := registry.Register(metric.MetricFriendliness, friendliness.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

func newSafetyClient(scope ProjectScope, cred azcore.TokenCredential, opts *options) (*safety.Client, error) {
	clientOpts := append([]safety.ClientOption{safety.WithCredential(cred)}, opts.safetyOpts...)
	client, err := safety.NewClient(safety.Scope{
		SubscriptionID: scope.SubscriptionID,
		ResourceGroup:  scope.ResourceGroup,
		ProjectName:    scope.ProjectName,
	}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create safety annotation client: %w", err)
	}
	return client, nil
}

func resolveCredential(opts *options) (azcore.TokenCredential, error) {
	if opts.cred != nil {
		return opts.cred, nil
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create default azure credential: %w", err)
	}
	return cred, nil
}

func studioURL(scope ProjectScope, evalRunID string) string {
	if evalRunID == "" {
		return fmt.Sprintf("https://ai.azure.com/project/%s", scope.ProjectName)
	}
	return fmt.Sprintf("https://ai.azure.com/project/%s/evaluation/%s", scope.ProjectName, evalRunID)
}
