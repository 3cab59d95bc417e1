//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package evaluation orchestrates quality and safety scoring of generated
// articles and images and reports results through a tracing span.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/result"
	"github.com/contoso/creative-eval/internal/log"
	itelemetry "github.com/contoso/creative-eval/internal/telemetry"
)

// EvaluateArticle scores a generated article. It annotates the evaluation
// span with the JSON-serialized inputs and output. In lab mode (the default)
// the returned result is the fixed literal regardless of input.
func EvaluateArticle(ctx context.Context, data *ArticleData, opt ...Option) (res *result.Result, err error) {
	if data == nil {
		return nil, errors.New("article data is nil")
	}
	ctx, span := itelemetry.Tracer().Start(ctx, itelemetry.SpanNameRunEvaluators)
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	if observer := itelemetry.SpanObserverFromContext(ctx); observer != nil {
		observer(ctx)
	}
	inputs, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation inputs: %w", err)
	}
	span.SetAttributes(attribute.String(itelemetry.KeyInputs, string(inputs)))
	cfg, err := ModelConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load model config: %w", err)
	}
	scope, err := ProjectScopeFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load project scope: %w", err)
	}
	articleEval, err := NewArticleEvaluator(cfg, scope, opt...)
	if err != nil {
		return nil, fmt.Errorf("create article evaluator: %w", err)
	}
	defer func() {
		if closeErr := articleEval.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close article evaluator: %w", closeErr))
		}
	}()
	res, err = articleEval.Run(ctx, []*evaluator.Record{data.record()})
	if err != nil {
		return nil, err
	}
	if err := annotateOutput(span, res); err != nil {
		return nil, err
	}
	span.SetStatus(codes.Ok, "completed")
	return res, nil
}

// EvaluateArticleInBackground serializes the raw pipeline outputs and runs
// EvaluateArticle in a goroutine joined to the caller's current span. The
// result is delivered on the returned channel, which is closed afterwards;
// failures are logged and close the channel without a result.
func EvaluateArticleInBackground(ctx context.Context, inputs *ArticleInputs, opt ...Option) <-chan *result.Result {
	results := make(chan *result.Result, 1)
	span := oteltrace.SpanFromContext(ctx)
	detached := oteltrace.ContextWithSpan(context.Background(), span)
	if observer := itelemetry.SpanObserverFromContext(ctx); observer != nil {
		detached = itelemetry.WithSpanObserver(detached, observer)
	}
	go func() {
		defer close(results)
		data, err := inputs.ArticleData()
		if err != nil {
			log.Errorf("build article evaluation data: %v", err)
			return
		}
		res, err := EvaluateArticle(detached, data, opt...)
		if err != nil {
			log.Errorf("evaluate article in background: %v", err)
			return
		}
		results <- res
	}()
	return results
}

// EvaluateImage scores generated image content. In lab mode (the default)
// the returned result is the fixed literal regardless of input.
func EvaluateImage(ctx context.Context, messages []evaluator.Message, opt ...Option) (res *result.Result, err error) {
	if len(messages) == 0 {
		return nil, errors.New("messages are empty")
	}
	ctx, span := itelemetry.Tracer().Start(ctx, itelemetry.SpanNameRunImageEvaluators)
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	if observer := itelemetry.SpanObserverFromContext(ctx); observer != nil {
		observer(ctx)
	}
	inputs, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation inputs: %w", err)
	}
	span.SetAttributes(attribute.String(itelemetry.KeyInputs, string(inputs)))
	scope, err := ProjectScopeFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load project scope: %w", err)
	}
	imageEval, err := NewImageEvaluator(scope, opt...)
	if err != nil {
		return nil, fmt.Errorf("create image evaluator: %w", err)
	}
	defer func() {
		if closeErr := imageEval.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close image evaluator: %w", closeErr))
		}
	}()
	res, err = imageEval.Run(ctx, []*evaluator.Record{{Messages: messages}})
	if err != nil {
		return nil, err
	}
	if err := annotateOutput(span, res); err != nil {
		return nil, err
	}
	span.SetStatus(codes.Ok, "completed")
	return res, nil
}

func annotateOutput(span oteltrace.Span, res *result.Result) error {
	output, err := res.MarshalString()
	if err != nil {
		return fmt.Errorf("marshal evaluation output: %w", err)
	}
	span.SetAttributes(attribute.String(itelemetry.KeyOutput, output))
	log.Infof("results: %s", output)
	return nil
}
