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
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/contoso/creative-eval/evaluation/evaluator/safety"
)

// options holds configuration shared by the aggregate evaluators.
type options struct {
	live              bool
	cred              azcore.TokenCredential
	safetyOpts        []safety.ClientOption
	recordParallelism int
	parallelEnabled   bool
}

// Option configures an aggregate evaluator.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithLiveEvaluation runs the registered evaluators instead of returning the
// lab-mode result literal.
func WithLiveEvaluation() Option {
	return func(o *options) { o.live = true }
}

// WithCredential sets the token credential used by the judge and safety
// clients instead of the default Azure credential chain.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(o *options) { o.cred = cred }
}

// WithSafetyClientOptions forwards options to the safety annotation client.
func WithSafetyClientOptions(opts ...safety.ClientOption) Option {
	return func(o *options) { o.safetyOpts = append(o.safetyOpts, opts...) }
}

// WithRecordParallelism sets the evaluation worker pool size.
func WithRecordParallelism(n int) Option {
	return func(o *options) { o.recordParallelism = n }
}

// WithParallelEvaluation evaluates records through the worker pool.
func WithParallelEvaluation(enabled bool) Option {
	return func(o *options) { o.parallelEnabled = enabled }
}
