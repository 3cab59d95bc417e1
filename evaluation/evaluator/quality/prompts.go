//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package quality

import "github.com/contoso/creative-eval/evaluation/metric"

const judgeSystemPrompt = `You are an AI assistant that grades generated articles. ` +
	`Score the requested dimension on an integer scale from 1 (worst) to 5 (best). ` +
	`Respond with JSON only, in the form {"score": <integer>}.`

const relevancePrompt = `Grade the relevance of the response: how well it addresses the ` +
	`main aspects of the query given the context. Irrelevant or off-topic responses score 1, ` +
	`responses that cover every aspect of the query score 5.

query: {{.Query}}
context: {{.Context}}
response: {{.Response}}`

const fluencyPrompt = `Grade the fluency of the response: grammatical correctness, natural ` +
	`word choice and readability, independent of factual accuracy. Broken or garbled text ` +
	`scores 1, polished prose scores 5.

response: {{.Response}}`

const coherencePrompt = `Grade the coherence of the response: how naturally the sentences ` +
	`fit together into a whole that answers the query. Disjointed fragments score 1, a ` +
	`smooth logical flow scores 5.

query: {{.Query}}
response: {{.Response}}`

const groundednessPrompt = `Grade the groundedness of the response: whether every claim it ` +
	`makes follows from the provided context. Responses that contradict or invent facts ` +
	`score 1, responses fully supported by the context score 5.

context: {{.Context}}
response: {{.Response}}`

var promptTemplates = map[string]string{
	metric.MetricRelevance:    relevancePrompt,
	metric.MetricFluency:      fluencyPrompt,
	metric.MetricCoherence:    coherencePrompt,
	metric.MetricGroundedness: groundednessPrompt,
}
