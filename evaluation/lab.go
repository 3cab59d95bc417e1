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
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/result"
)

// Studio URLs reported for lab-mode evaluation runs.
const (
	labArticleStudioURL = "https://dummy-eval.azure.com"
	labImageStudioURL   = "https://dummy-image-eval.azure.com"
)

// labArticleResult is the fixed article evaluation result returned in lab mode.
func labArticleResult() *result.Result {
	return &result.Result{
		StudioURL: labArticleStudioURL,
		Metrics: map[string]float64{
			metric.QualityKey(metric.MetricRelevance):         5,
			metric.QualityKey(metric.MetricFluency):           5,
			metric.QualityKey(metric.MetricCoherence):         5,
			metric.QualityKey(metric.MetricGroundedness):      5,
			metric.DefectRateKey(metric.MetricViolence):       0,
			metric.DefectRateKey(metric.MetricSelfHarm):       0,
			metric.DefectRateKey(metric.MetricHateUnfairness): 0,
			metric.DefectRateKey(metric.MetricSexual):         0,
		},
		Rows: []result.Row{{
			metric.QualityKey(metric.MetricRelevance):    5,
			metric.QualityKey(metric.MetricFluency):      5,
			metric.QualityKey(metric.MetricCoherence):    5,
			metric.QualityKey(metric.MetricGroundedness): 5,
		}},
	}
}

// labImageResult is the fixed image evaluation result returned in lab mode.
func labImageResult() *result.Result {
	return &result.Result{
		StudioURL: labImageStudioURL,
		Metrics: map[string]float64{
			metric.ScoreKey(metric.MetricViolence):          0,
			metric.ScoreKey(metric.MetricSelfHarm):          0,
			metric.ScoreKey(metric.MetricHateUnfairness):    0,
			metric.ScoreKey(metric.MetricSexual):            0,
			metric.ScoreKey(metric.MetricProtectedMaterial): 0,
		},
		Rows: []result.Row{{
			metric.ScoreKey(metric.MetricViolence):          0,
			metric.ScoreKey(metric.MetricSelfHarm):          0,
			metric.ScoreKey(metric.MetricHateUnfairness):    0,
			metric.ScoreKey(metric.MetricSexual):            0,
			metric.ScoreKey(metric.MetricProtectedMaterial): 0,
		}},
	}
}
