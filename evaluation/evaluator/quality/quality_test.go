//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package quality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
)

type fakeJudge struct {
	outputs []string
	err     error
	calls   int
}

func (f *fakeJudge) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	idx := f.calls - 1
	if idx >= len(f.outputs) {
		idx = len(f.outputs) - 1
	}
	return f.outputs[idx], nil
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Deployment: "gpt-4", APIVersion: "2024-02-01", Endpoint: "https://unit.cognitiveservices.azure.com/"}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, Config{APIVersion: "v", Endpoint: "e"}.Validate())
	assert.Error(t, Config{Deployment: "d", Endpoint: "e"}.Validate())
	assert.Error(t, Config{Deployment: "d", APIVersion: "v"}.Validate())
}

func TestNewWithJudgeValidation(t *testing.T) {
	_, err := NewWithJudge("relevance", "gpt-4", nil)
	assert.Error(t, err)

	_, err = NewWithJudge("unknown_metric", "gpt-4", &fakeJudge{outputs: []string{"5"}})
	assert.ErrorContains(t, err, "no judge prompt")

	for _, name := range []string{
		metric.MetricRelevance,
		metric.MetricFluency,
		metric.MetricCoherence,
		metric.MetricGroundedness,
	} {
		e, err := NewWithJudge(name, "gpt-4", &fakeJudge{outputs: []string{"5"}})
		require.NoError(t, err)
		assert.Equal(t, name, e.Name())
	}
}

func TestEvaluateParsesJudgeOutput(t *testing.T) {
	record := &evaluator.Record{
		Query:    "write a camping article",
		Context:  "tent product sheet",
		Response: "Winter tents keep you warm.",
	}
	cases := []struct {
		name   string
		output string
		want   float64
	}{
		{name: "json", output: `{"score": 4}`, want: 4},
		{name: "fenced json", output: "```json\n{\"score\": 3}\n```", want: 3},
		{name: "bare number", output: "5", want: 5},
		{name: "number with trailing text", output: "4 out of 5", want: 4},
		{name: "clamped high", output: "9", want: 5},
		{name: "clamped low", output: "0", want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			judge := &fakeJudge{outputs: []string{tc.output}}
			e, err := NewWithJudge(metric.MetricRelevance, "gpt-4", judge)
			require.NoError(t, err)

			score, err := e.Evaluate(context.Background(), record)
			require.NoError(t, err)
			assert.Equal(t, metric.MetricRelevance, score.MetricName)
			assert.Equal(t, tc.want, score.Value)
		})
	}
}

func TestEvaluateRetriesUnparseableOutput(t *testing.T) {
	judge := &fakeJudge{outputs: []string{"I think it deserves high marks", `{"score": 4}`}}
	e, err := NewWithJudge(metric.MetricFluency, "gpt-4", judge)
	require.NoError(t, err)

	score, err := e.Evaluate(context.Background(), &evaluator.Record{Response: "text"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, score.Value)
	assert.Equal(t, 2, judge.calls)
}

func TestEvaluateFailsAfterRetry(t *testing.T) {
	judge := &fakeJudge{outputs: []string{"nope", "still nope"}}
	e, err := NewWithJudge(metric.MetricCoherence, "gpt-4", judge)
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), &evaluator.Record{Response: "text"})
	assert.Error(t, err)
	assert.Equal(t, 2, judge.calls)
}

func TestEvaluateJudgeError(t *testing.T) {
	judge := &fakeJudge{err: errors.New("deployment unavailable")}
	e, err := NewWithJudge(metric.MetricGroundedness, "gpt-4", judge)
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), &evaluator.Record{Response: "text"})
	assert.ErrorContains(t, err, "deployment unavailable")

	_, err = e.Evaluate(context.Background(), nil)
	assert.Error(t, err)
}

func TestEvaluateCachesScores(t *testing.T) {
	judge := &fakeJudge{outputs: []string{`{"score": 5}`}}
	e, err := NewWithJudge(metric.MetricRelevance, "gpt-4", judge)
	require.NoError(t, err)

	record := &evaluator.Record{Query: "q", Context: "c", Response: "r"}
	first, err := e.Evaluate(context.Background(), record)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, 1, judge.calls)
	assert.Equal(t, "judge", first.Details["source"])
	assert.Equal(t, "cached", second.Details["source"])

	// A different record misses the cache.
	_, err = e.Evaluate(context.Background(), &evaluator.Record{Query: "other", Response: "r"})
	require.NoError(t, err)
	assert.Equal(t, 2, judge.calls)
}

func TestCacheKey(t *testing.T) {
	k1 := cacheKey("gpt-4", "prompt a")
	k2 := cacheKey("gpt-4", "prompt a")
	k3 := cacheKey("gpt-4", "prompt b")
	k4 := cacheKey("gpt-35", "prompt a")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
}

func TestParseScore(t *testing.T) {
	_, err := parseScore("")
	assert.Error(t, err)

	_, err = parseScore(`{"score": "high"}`)
	assert.Error(t, err)

	v, err := parseScore("  3.5  ")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestNewRequiresCredential(t *testing.T) {
	cfg := Config{Deployment: "gpt-4", APIVersion: "2024-02-01", Endpoint: "https://unit.cognitiveservices.azure.com/"}
	_, err := New(metric.MetricRelevance, cfg, nil)
	assert.Error(t, err)
}
