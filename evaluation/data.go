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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/contoso/creative-eval/evaluation/evaluator"
)

// ArticleData is the article evaluation input. Each field holds a
// JSON-serialized structure of free-form text.
type ArticleData struct {
	// Query is the serialized writing request contexts.
	Query string `json:"query"`
	// Context is the serialized grounding material.
	Context string `json:"context"`
	// Response is the serialized generated article.
	Response string `json:"response"`
}

func (d *ArticleData) record() *evaluator.Record {
	return &evaluator.Record{
		Query:    d.Query,
		Context:  d.Context,
		Response: d.Response,
	}
}

// ArticleInputs are the raw writing pipeline outputs evaluated in the background.
type ArticleInputs struct {
	// ResearchContext is the research task description.
	ResearchContext any
	// ProductContext is the product task description.
	ProductContext any
	// AssignmentContext is the writing assignment description.
	AssignmentContext any
	// Research is the collected research material.
	Research any
	// Products are the retrieved product records.
	Products any
	// Article is the generated article.
	Article any
}

// ArticleData serializes the raw inputs into an evaluation record: the three
// task contexts form the query, research and products form the context and
// the article forms the response.
func (in *ArticleInputs) ArticleData() (*ArticleData, error) {
	if in == nil {
		return nil, errors.New("article inputs are nil")
	}
	query, err := json.Marshal(map[string]any{
		"research_context":   in.ResearchContext,
		"product_context":    in.ProductContext,
		"assignment_context": in.AssignmentContext,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	contextPayload, err := json.Marshal(map[string]any{
		"research": in.Research,
		"products": in.Products,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal context: %w", err)
	}
	response, err := json.Marshal(in.Article)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return &ArticleData{
		Query:    string(query),
		Context:  string(contextPayload),
		Response: string(response),
	}, nil
}
