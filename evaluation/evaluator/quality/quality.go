//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package quality provides the LLM-judged quality evaluators: relevance,
// fluency, coherence and groundedness.
package quality

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
)

// Config holds the judge model deployment configuration.
type Config struct {
	// Deployment is the Azure OpenAI deployment name of the judge model.
	Deployment string
	// APIVersion is the Azure OpenAI API version.
	APIVersion string
	// Endpoint is the Azure OpenAI endpoint URL.
	Endpoint string
}

// Validate returns an error if the config is incomplete.
func (c Config) Validate() error {
	if c.Deployment == "" {
		return errors.New("judge deployment is empty")
	}
	if c.APIVersion == "" {
		return errors.New("judge api version is empty")
	}
	if c.Endpoint == "" {
		return errors.New("judge endpoint is empty")
	}
	return nil
}

// Judge produces a raw completion for a judge prompt.
type Judge interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type azureJudge struct {
	client     openai.Client
	deployment string
}

// NewAzureJudge builds a judge backed by an Azure OpenAI chat deployment.
func NewAzureJudge(cfg Config, cred azcore.TokenCredential) (Judge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, errors.New("credential is nil")
	}
	client := openai.NewClient(
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithTokenCredential(cred),
	)
	return &azureJudge{client: client, deployment: cfg.Deployment}, nil
}

// Complete runs the judge prompt through the chat deployment.
func (j *azureJudge) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := j.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(j.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(judgeSystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("judge completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("judge completion has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type qualityEvaluator struct {
	name       string
	judge      Judge
	tmpl       *template.Template
	deployment string
	cache      *cache
}

type promptData struct {
	Query    string
	Context  string
	Response string
}

// New builds a quality evaluator for the given metric name, creating an Azure
// judge from the config.
func New(name string, cfg Config, cred azcore.TokenCredential) (evaluator.Evaluator, error) {
	judge, err := NewAzureJudge(cfg, cred)
	if err != nil {
		return nil, fmt.Errorf("create %s judge: %w", name, err)
	}
	return NewWithJudge(name, cfg.Deployment, judge)
}

// NewWithJudge builds a quality evaluator on an existing judge.
func NewWithJudge(name, deployment string, judge Judge) (evaluator.Evaluator, error) {
	if judge == nil {
		return nil, errors.New("judge is nil")
	}
	promptText, ok := promptTemplates[name]
	if !ok {
		return nil, fmt.Errorf("no judge prompt for metric %s", name)
	}
	tmpl, err := template.New(name).Parse(promptText)
	if err != nil {
		return nil, fmt.Errorf("parse %s prompt template: %w", name, err)
	}
	return &qualityEvaluator{
		name:       name,
		judge:      judge,
		tmpl:       tmpl,
		deployment: deployment,
		cache:      newCache(),
	}, nil
}

// Name returns the metric name for this evaluator.
func (e *qualityEvaluator) Name() string {
	return e.name
}

// Description describes what this evaluator checks.
func (e *qualityEvaluator) Description() string {
	return fmt.Sprintf("Scores %s of the generated response with an LLM judge", e.name)
}

// Evaluate renders the judge prompt for the record and parses the judge score.
func (e *qualityEvaluator) Evaluate(ctx context.Context, record *evaluator.Record) (*evaluator.Score, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, promptData{
		Query:    record.Query,
		Context:  record.Context,
		Response: record.Response,
	}); err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", e.name, err)
	}
	prompt := buf.String()
	key := cacheKey(e.deployment, prompt)
	if score, ok := e.cache.get(key); ok {
		return e.score(score, "cached"), nil
	}
	score, err := e.askJudge(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", e.name, err)
	}
	e.cache.put(key, score)
	return e.score(score, "judge"), nil
}

func (e *qualityEvaluator) score(value float64, source string) *evaluator.Score {
	return &evaluator.Score{
		MetricName: e.name,
		Value:      metric.QualityInterval.Clamp(value),
		Details:    map[string]any{"source": source},
	}
}

// askJudge calls the judge and parses its score, re-asking once when the
// output is unparseable.
func (e *qualityEvaluator) askJudge(ctx context.Context, prompt string) (float64, error) {
	raw, err := e.judge.Complete(ctx, prompt)
	if err != nil {
		return 0, err
	}
	score, perr := parseScore(raw)
	if perr == nil {
		return score, nil
	}
	raw2, err2 := e.judge.Complete(ctx, prompt)
	if err2 != nil {
		return 0, perr
	}
	score2, perr2 := parseScore(raw2)
	if perr2 != nil {
		return 0, fmt.Errorf("parse judge output %q: %w", truncate(raw2, 200), perr2)
	}
	return score2, nil
}

type judgeOutput struct {
	Score float64 `json:"score"`
}

func parseScore(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("judge output is empty")
	}
	if strings.HasPrefix(s, "{") {
		var out judgeOutput
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return 0, fmt.Errorf("judge output is not valid JSON: %w", err)
		}
		return out.Score, nil
	}
	v, err := strconv.ParseFloat(strings.Fields(s)[0], 64)
	if err != nil {
		return 0, fmt.Errorf("judge output is not a score: %w", err)
	}
	return v, nil
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
