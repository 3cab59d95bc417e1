//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package evaluator defines the evaluator contract and its input records.
package evaluator

import "context"

// Message roles used in multimodal records.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part types used in multimodal records.
const (
	ContentTypeText     = "text"
	ContentTypeImageURL = "image_url"
)

// ContentPart is one piece of a multimodal message.
type ContentPart struct {
	// Type is the content type, text or image_url.
	Type string `json:"type"`
	// Text carries the textual content when Type is text.
	Text string `json:"text,omitempty"`
	// ImageURL carries the image location when Type is image_url.
	ImageURL string `json:"image_url,omitempty"`
}

// Message is one conversational turn of a multimodal record.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// Record is the evaluation input: serialized free-form text for the query,
// the grounding context and the generated response, plus optional multimodal
// messages for image evaluation.
type Record struct {
	// Query is the JSON-serialized request context.
	Query string `json:"query"`
	// Context is the JSON-serialized grounding material.
	Context string `json:"context"`
	// Response is the JSON-serialized generated output.
	Response string `json:"response"`
	// Messages carries multimodal content for image evaluators.
	Messages []Message `json:"messages,omitempty"`
}

// Score is the outcome of one evaluator run on one record.
type Score struct {
	// MetricName identifies the metric this score belongs to.
	MetricName string `json:"metric_name"`
	// Value is the numeric score.
	Value float64 `json:"value"`
	// Details contains evaluator-specific information such as the judge reason.
	Details map[string]any `json:"details,omitempty"`
}

// Evaluator scores one aspect of an evaluation record.
type Evaluator interface {
	// Name returns the metric name this evaluator produces.
	Name() string
	// Description describes what this evaluator checks.
	Description() string
	// Evaluate scores the record.
	Evaluate(ctx context.Context, record *Record) (*Score, error)
}
