//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

// Package result defines the evaluation result record returned by the evaluation surfaces.
package result

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Row holds the metric values produced for a single evaluated record.
// Keys are fixed metric key strings, values are numeric scores.
type Row map[string]float64

// Result is the evaluation result record: a summary metrics mapping plus the
// per-row metric mappings it was aggregated from.
type Result struct {
	// StudioURL links to the evaluation run in the hosting studio.
	StudioURL string `json:"studio_url"`
	// Metrics maps metric key to the aggregated score.
	Metrics map[string]float64 `json:"metrics"`
	// Rows contains the per-record metric values.
	Rows []Row `json:"rows"`
}

// New returns an empty result with the given studio URL.
func New(studioURL string) *Result {
	return &Result{
		StudioURL: studioURL,
		Metrics:   make(map[string]float64),
		Rows:      []Row{},
	}
}

// Clone returns a deep copy so callers can hand out shared literals safely.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{
		StudioURL: r.StudioURL,
		Metrics:   make(map[string]float64, len(r.Metrics)),
		Rows:      make([]Row, 0, len(r.Rows)),
	}
	for k, v := range r.Metrics {
		out.Metrics[k] = v
	}
	for _, row := range r.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// MetricKeys returns the summary metric keys in sorted order.
func (r *Result) MetricKeys() []string {
	keys := make([]string, 0, len(r.Metrics))
	for k := range r.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalString renders the result as a compact JSON string.
func (r *Result) MarshalString() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(b), nil
}

// Load parses a serialized result.
func Load(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	if r.Metrics == nil {
		r.Metrics = make(map[string]float64)
	}
	return &r, nil
}
