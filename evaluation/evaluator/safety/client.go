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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/contoso/creative-eval/evaluation/evaluator"
)

const (
	defaultEndpoint   = "https://eastus.api.azureml.ms"
	defaultTokenScope = "https://management.azure.com/.default"
)

// Scope identifies the Azure AI project that hosts the safety annotation service.
type Scope struct {
	// SubscriptionID is the Azure subscription ID.
	SubscriptionID string
	// ResourceGroup is the Azure resource group name.
	ResourceGroup string
	// ProjectName is the Azure AI project name.
	ProjectName string
}

// Validate returns an error if the scope is incomplete.
func (s Scope) Validate() error {
	if s.SubscriptionID == "" {
		return errors.New("subscription id is empty")
	}
	if s.ResourceGroup == "" {
		return errors.New("resource group is empty")
	}
	if s.ProjectName == "" {
		return errors.New("project name is empty")
	}
	return nil
}

// CredentialSupplier lazily produces the token credential used by the client.
type CredentialSupplier func() (azcore.TokenCredential, error)

// Annotation is the safety annotation for one record.
type Annotation struct {
	// Severity is the harm severity on the 0-7 scale.
	Severity float64 `json:"severity"`
	// Detected reports detection-type categories such as protected material.
	Detected bool `json:"detected"`
	// Reason is the annotator's explanation.
	Reason string `json:"reason,omitempty"`
}

// ClientOption configures the annotation client.
type ClientOption func(*Client)

// WithEndpoint overrides the annotation service endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithCredential uses a fixed token credential instead of the default chain.
func WithCredential(cred azcore.TokenCredential) ClientOption {
	return func(c *Client) {
		c.credSupplier = func() (azcore.TokenCredential, error) { return cred, nil }
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenScope overrides the OAuth token scope requested for the service.
func WithTokenScope(scope string) ClientOption {
	return func(c *Client) { c.tokenScope = scope }
}

// Client calls the Azure AI project safety annotation service.
// Credential resolution and token acquisition happen on first use, so
// constructing a client never touches the network.
type Client struct {
	endpoint     string
	scope        Scope
	tokenScope   string
	httpClient   *http.Client
	credSupplier CredentialSupplier

	credOnce sync.Once
	cred     azcore.TokenCredential
	credErr  error
}

// NewClient builds an annotation client for the given project scope.
func NewClient(scope Scope, opt ...ClientOption) (*Client, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("validate project scope: %w", err)
	}
	c := &Client{
		endpoint:   defaultEndpoint,
		scope:      scope,
		tokenScope: defaultTokenScope,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		credSupplier: func() (azcore.TokenCredential, error) {
			return azidentity.NewDefaultAzureCredential(nil)
		},
	}
	for _, o := range opt {
		o(c)
	}
	return c, nil
}

type annotateRequest struct {
	Category string              `json:"category"`
	Query    string              `json:"query,omitempty"`
	Response string              `json:"response,omitempty"`
	Messages []evaluator.Message `json:"messages,omitempty"`
}

// AnnotateText scores a query/response pair for the given harm category.
func (c *Client) AnnotateText(ctx context.Context, category, query, response string) (*Annotation, error) {
	if category == "" {
		return nil, errors.New("category is empty")
	}
	return c.annotate(ctx, &annotateRequest{Category: category, Query: query, Response: response})
}

// AnnotateMessages scores a multimodal message list for the given harm category.
func (c *Client) AnnotateMessages(ctx context.Context, category string, messages []evaluator.Message) (*Annotation, error) {
	if category == "" {
		return nil, errors.New("category is empty")
	}
	if len(messages) == 0 {
		return nil, errors.New("messages are empty")
	}
	return c.annotate(ctx, &annotateRequest{Category: category, Messages: messages})
}

func (c *Client) annotate(ctx context.Context, req *annotateRequest) (*Annotation, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire annotation token: %w", err)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal annotation request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.annotationURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build annotation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call annotation service: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("annotation service returned %d: %s", resp.StatusCode, string(payload))
	}
	var annotation Annotation
	if err := json.NewDecoder(resp.Body).Decode(&annotation); err != nil {
		return nil, fmt.Errorf("decode annotation response: %w", err)
	}
	return &annotation, nil
}

func (c *Client) annotationURL() string {
	return fmt.Sprintf(
		"%s/raisvc/v1.0/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s/annotation",
		c.endpoint, c.scope.SubscriptionID, c.scope.ResourceGroup, c.scope.ProjectName,
	)
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.credOnce.Do(func() {
		c.cred, c.credErr = c.credSupplier()
	})
	if c.credErr != nil {
		return "", c.credErr
	}
	if c.cred == nil {
		return "", nil
	}
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{c.tokenScope}})
	if err != nil {
		return "", err
	}
	return token.Token, nil
}
