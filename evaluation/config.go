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
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables configuring the judge deployment and project scope.
const (
	EnvEvalDeployment = "AZURE_OPENAI_4_EVAL_DEPLOYMENT_NAME"
	EnvAPIVersion     = "AZURE_OPENAI_API_VERSION"
	EnvOpenAIName     = "AZURE_OPENAI_NAME"
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
	EnvResourceGroup  = "AZURE_RESOURCE_GROUP"
	EnvProjectName    = "AZURE_AI_PROJECT_NAME"
)

// ModelConfig is the Azure OpenAI judge deployment configuration.
type ModelConfig struct {
	// Deployment is the judge model deployment name.
	Deployment string
	// APIVersion is the Azure OpenAI API version.
	APIVersion string
	// Endpoint is the Azure OpenAI endpoint URL.
	Endpoint string
}

// Validate returns an error if the config is incomplete.
func (c ModelConfig) Validate() error {
	if c.Deployment == "" {
		return errors.New("deployment is empty")
	}
	if c.APIVersion == "" {
		return errors.New("api version is empty")
	}
	if c.Endpoint == "" {
		return errors.New("endpoint is empty")
	}
	return nil
}

// ProjectScope identifies the Azure AI project used by the safety evaluators.
type ProjectScope struct {
	// SubscriptionID is the Azure subscription ID.
	SubscriptionID string
	// ResourceGroup is the Azure resource group name.
	ResourceGroup string
	// ProjectName is the Azure AI project name.
	ProjectName string
}

// Validate returns an error if the scope is incomplete.
func (s ProjectScope) Validate() error {
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

// ModelConfigFromEnv builds the judge deployment configuration from the environment.
func ModelConfigFromEnv() (ModelConfig, error) {
	deployment, err := requireEnv(EnvEvalDeployment)
	if err != nil {
		return ModelConfig{}, err
	}
	apiVersion, err := requireEnv(EnvAPIVersion)
	if err != nil {
		return ModelConfig{}, err
	}
	name, err := requireEnv(EnvOpenAIName)
	if err != nil {
		return ModelConfig{}, err
	}
	return ModelConfig{
		Deployment: deployment,
		APIVersion: apiVersion,
		Endpoint:   fmt.Sprintf("https://%s.cognitiveservices.azure.com/", name),
	}, nil
}

// ProjectScopeFromEnv builds the project scope from the environment.
func ProjectScopeFromEnv() (ProjectScope, error) {
	subscriptionID, err := requireEnv(EnvSubscriptionID)
	if err != nil {
		return ProjectScope{}, err
	}
	resourceGroup, err := requireEnv(EnvResourceGroup)
	if err != nil {
		return ProjectScope{}, err
	}
	projectName, err := requireEnv(EnvProjectName)
	if err != nil {
		return ProjectScope{}, err
	}
	return ProjectScope{
		SubscriptionID: subscriptionID,
		ResourceGroup:  resourceGroup,
		ProjectName:    projectName,
	}, nil
}

func requireEnv(name string) (string, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return v, nil
}
