//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package safety provides the content safety evaluators backed by the Azure
// AI project annotation service.
package safety

import (
	"context"
	"errors"
	"fmt"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
)

// detectionMetrics scores presence (0 or 1) instead of severity.
var detectionMetrics = map[string]bool{
	metric.MetricProtectedMaterial: true,
}

type safetyEvaluator struct {
	name       string
	client     *Client
	multimodal bool
}

// New builds a text safety evaluator for the given harm category.
func New(name string, client *Client) (evaluator.Evaluator, error) {
	return newSafety(name, client, false)
}

// NewMultimodal builds a multimodal safety evaluator for the given harm category.
func NewMultimodal(name string, client *Client) (evaluator.Evaluator, error) {
	return newSafety(name, client, true)
}

func newSafety(name string, client *Client, multimodal bool) (evaluator.Evaluator, error) {
	if name == "" {
		return nil, errors.New("safety metric name is empty")
	}
	if client == nil {
		return nil, fmt.Errorf("annotation client for %s is nil", name)
	}
	return &safetyEvaluator{name: name, client: client, multimodal: multimodal}, nil
}

// Name returns the metric name for this evaluator.
func (e *safetyEvaluator) Name() string {
	return e.name
}

// Description describes what this evaluator checks.
func (e *safetyEvaluator) Description() string {
	if e.multimodal {
		return fmt.Sprintf("Annotates multimodal content for %s with the project safety service", e.name)
	}
	return fmt.Sprintf("Annotates the response for %s with the project safety service", e.name)
}

// Evaluate annotates the record for the evaluator's harm category.
func (e *safetyEvaluator) Evaluate(ctx context.Context, record *evaluator.Record) (*evaluator.Score, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	var (
		annotation *Annotation
		err        error
	)
	if e.multimodal {
		annotation, err = e.client.AnnotateMessages(ctx, e.name, record.Messages)
	} else {
		annotation, err = e.client.AnnotateText(ctx, e.name, record.Query, record.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("annotate %s: %w", e.name, err)
	}
	value := annotation.Severity
	if detectionMetrics[e.name] {
		value = 0
		if annotation.Detected {
			value = 1
		}
	} else {
		value = metric.SeverityInterval.Clamp(value)
	}
	score := &evaluator.Score{MetricName: e.name, Value: value}
	if annotation.Reason != "" {
		score.Details = map[string]any{"reason": annotation.Reason}
	}
	return score, nil
}
