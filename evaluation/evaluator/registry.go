//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package evaluator

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry holds evaluators keyed by metric name.
type Registry struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[string]Evaluator)}
}

// Register adds an evaluator under the given metric name.
func (r *Registry) Register(name string, e Evaluator) error {
	if name == "" {
		return errors.New("evaluator name is empty")
	}
	if e == nil {
		return fmt.Errorf("evaluator %s is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.evaluators[name]; ok {
		return fmt.Errorf("evaluator %s already registered", name)
	}
	r.evaluators[name] = e
	return nil
}

// Get returns the evaluator for the given metric name.
func (r *Registry) Get(name string) (Evaluator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.evaluators[name]
	if !ok {
		return nil, fmt.Errorf("evaluator %s not registered", name)
	}
	return e, nil
}

// List returns the registered metric names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.evaluators))
	for name := range r.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
