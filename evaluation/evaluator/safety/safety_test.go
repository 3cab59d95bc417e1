//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package safety

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
)

var testScope = Scope{
	SubscriptionID: "sub-123",
	ResourceGroup:  "rg-eval",
	ProjectName:    "creative-project",
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(testScope,
		WithEndpoint(server.URL),
		WithCredential(nil),
		WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestScopeValidate(t *testing.T) {
	assert.NoError(t, testScope.Validate())
	assert.Error(t, Scope{ResourceGroup: "rg", ProjectName: "p"}.Validate())
	assert.Error(t, Scope{SubscriptionID: "s", ProjectName: "p"}.Validate())
	assert.Error(t, Scope{SubscriptionID: "s", ResourceGroup: "rg"}.Validate())
}

func TestNewClientValidatesScope(t *testing.T) {
	_, err := NewClient(Scope{})
	assert.Error(t, err)
}

func TestAnnotateText(t *testing.T) {
	var gotPath string
	var gotReq annotateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(Annotation{Severity: 2, Reason: "mild"})
	})

	annotation, err := client.AnnotateText(context.Background(), "violence", "query text", "response text")
	require.NoError(t, err)
	assert.Equal(t, 2.0, annotation.Severity)
	assert.Equal(t, "mild", annotation.Reason)

	assert.Equal(t,
		"/raisvc/v1.0/subscriptions/sub-123/resourceGroups/rg-eval/providers/Microsoft.MachineLearningServices/workspaces/creative-project/annotation",
		gotPath)
	assert.Equal(t, "violence", gotReq.Category)
	assert.Equal(t, "query text", gotReq.Query)
	assert.Equal(t, "response text", gotReq.Response)
}

func TestAnnotateMessages(t *testing.T) {
	var gotReq annotateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(Annotation{Detected: true})
	})

	messages := []evaluator.Message{{
		Role: evaluator.RoleUser,
		Content: []evaluator.ContentPart{
			{Type: evaluator.ContentTypeImageURL, ImageURL: "https://example.com/a.png"},
		},
	}}
	annotation, err := client.AnnotateMessages(context.Background(), "protected_material", messages)
	require.NoError(t, err)
	assert.True(t, annotation.Detected)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, evaluator.RoleUser, gotReq.Messages[0].Role)
}

func TestAnnotateValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.AnnotateText(context.Background(), "", "q", "r")
	assert.Error(t, err)

	_, err = client.AnnotateMessages(context.Background(), "violence", nil)
	assert.Error(t, err)
}

func TestAnnotateServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.AnnotateText(context.Background(), "violence", "q", "r")
	assert.ErrorContains(t, err, "429")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestEvaluateSeverity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Annotation{Severity: 9, Reason: "graphic"})
	})
	e, err := New(metric.MetricViolence, client)
	require.NoError(t, err)
	assert.Equal(t, metric.MetricViolence, e.Name())

	score, err := e.Evaluate(context.Background(), &evaluator.Record{Query: "q", Response: "r"})
	require.NoError(t, err)
	// Severity is clamped to the annotator range.
	assert.Equal(t, 7.0, score.Value)
	assert.Equal(t, "graphic", score.Details["reason"])
}

func TestEvaluateDetection(t *testing.T) {
	for _, detected := range []bool{true, false} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Annotation{Detected: detected})
		})
		e, err := NewMultimodal(metric.MetricProtectedMaterial, client)
		require.NoError(t, err)

		messages := []evaluator.Message{{
			Role:    evaluator.RoleAssistant,
			Content: []evaluator.ContentPart{{Type: evaluator.ContentTypeText, Text: "hello"}},
		}}
		score, err := e.Evaluate(context.Background(), &evaluator.Record{Messages: messages})
		require.NoError(t, err)
		want := 0.0
		if detected {
			want = 1.0
		}
		assert.Equal(t, want, score.Value)
	}
}

func TestNewValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := New("", client)
	assert.Error(t, err)

	_, err = New(metric.MetricViolence, nil)
	assert.Error(t, err)
}

func TestEvaluateNilRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	e, err := New(metric.MetricSexual, client)
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), nil)
	assert.Error(t, err)
}
