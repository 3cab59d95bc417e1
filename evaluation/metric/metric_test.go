//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalContains(t *testing.T) {
	closed := Interval{MinValue: 1, MaxValue: 5}
	assert.True(t, closed.Contains(1))
	assert.True(t, closed.Contains(5))
	assert.False(t, closed.Contains(0.9))
	assert.False(t, closed.Contains(5.1))

	open := Interval{MinValue: 1, MaxValue: 5, OpenAtMin: true, OpenAtMax: true}
	assert.False(t, open.Contains(1))
	assert.False(t, open.Contains(5))
	assert.True(t, open.Contains(3))
}

func TestIntervalClamp(t *testing.T) {
	i := Interval{MinValue: 0, MaxValue: 7}
	assert.Equal(t, 0.0, i.Clamp(-1))
	assert.Equal(t, 7.0, i.Clamp(9))
	assert.Equal(t, 4.0, i.Clamp(4))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "relevance.gpt_relevance", QualityKey(MetricRelevance))
	assert.Equal(t, "violence.violence_defect_rate", DefectRateKey(MetricViolence))
	assert.Equal(t, "protected_material.score", ScoreKey(MetricProtectedMaterial))
}

func TestDefaultArticleMetrics(t *testing.T) {
	metrics := DefaultArticleMetrics()
	require.Len(t, metrics, 8)

	byName := make(map[string]*EvalMetric, len(metrics))
	for _, m := range metrics {
		byName[m.Name] = m
	}

	relevance := byName[MetricRelevance]
	require.NotNil(t, relevance)
	assert.Equal(t, "relevance.gpt_relevance", relevance.Key)
	assert.Equal(t, AggregationMean, relevance.Aggregation)
	assert.False(t, relevance.SummaryOnly)

	violence := byName[MetricViolence]
	require.NotNil(t, violence)
	assert.Equal(t, "violence.violence_defect_rate", violence.Key)
	assert.Equal(t, AggregationDefectRate, violence.Aggregation)
	assert.True(t, violence.SummaryOnly)
}

func TestDefaultImageMetrics(t *testing.T) {
	metrics := DefaultImageMetrics()
	require.Len(t, metrics, 5)
	for _, m := range metrics {
		assert.Equal(t, ScoreKey(m.Name), m.Key)
		assert.Equal(t, AggregationMean, m.Aggregation)
		assert.False(t, m.SummaryOnly)
	}
}

func TestSummarizeMean(t *testing.T) {
	metrics := []*EvalMetric{{
		Name:        MetricRelevance,
		Key:         QualityKey(MetricRelevance),
		Aggregation: AggregationMean,
		Interval:    &QualityInterval,
	}}
	scores := []map[string]float64{
		{MetricRelevance: 5},
		{MetricRelevance: 3},
		{MetricRelevance: 9}, // clamped to 5
	}
	summary, err := Summarize(metrics, scores)
	require.NoError(t, err)
	assert.InDelta(t, (5.0+3.0+5.0)/3.0, summary["relevance.gpt_relevance"], 1e-9)
}

func TestSummarizeDefectRate(t *testing.T) {
	metrics := []*EvalMetric{{
		Name:        MetricViolence,
		Key:         DefectRateKey(MetricViolence),
		Threshold:   3,
		Aggregation: AggregationDefectRate,
		Interval:    &SeverityInterval,
	}}
	scores := []map[string]float64{
		{MetricViolence: 0},
		{MetricViolence: 4},
		{MetricViolence: 7},
		{MetricViolence: 3},
	}
	summary, err := Summarize(metrics, scores)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, summary["violence.violence_defect_rate"], 1e-9)
}

func TestSummarizeEdgeCases(t *testing.T) {
	_, err := Summarize(nil, nil)
	assert.Error(t, err)

	_, err = Summarize([]*EvalMetric{nil}, nil)
	assert.Error(t, err)

	_, err = Summarize([]*EvalMetric{{Name: "x", Key: "x", Aggregation: "median"}},
		[]map[string]float64{{"x": 1}})
	assert.Error(t, err)

	// Metric with no row values reports zero.
	summary, err := Summarize([]*EvalMetric{{
		Name:        MetricFluency,
		Key:         QualityKey(MetricFluency),
		Aggregation: AggregationMean,
	}}, []map[string]float64{{"other": 1}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary["fluency.gpt_fluency"])
}

func TestRowsFromScores(t *testing.T) {
	metrics := []*EvalMetric{
		{
			Name:        MetricRelevance,
			Key:         QualityKey(MetricRelevance),
			Aggregation: AggregationMean,
			Interval:    &QualityInterval,
		},
		{
			Name:        MetricViolence,
			Key:         DefectRateKey(MetricViolence),
			Aggregation: AggregationDefectRate,
			SummaryOnly: true,
		},
	}
	scores := []map[string]float64{
		{MetricRelevance: 4, MetricViolence: 2},
		{MetricViolence: 1},
	}
	rows := RowsFromScores(metrics, scores)
	require.Len(t, rows, 2)
	assert.Equal(t, 4.0, rows[0]["relevance.gpt_relevance"])
	assert.NotContains(t, rows[0], "violence.violence_defect_rate")
	assert.Empty(t, rows[1])
}
