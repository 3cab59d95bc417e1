//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package quality

import (
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
)

type cache struct {
	mu    sync.RWMutex
	byKey map[string]float64
}

func newCache() *cache {
	return &cache{byKey: make(map[string]float64)}
}

func cacheKey(deployment, prompt string) string {
	h := murmur3.New128()
	_, _ = h.Write([]byte(deployment))
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.Write([]byte(prompt))
	h1, h2 := h.Sum128()
	return fmt.Sprintf("%016x%016x", h1, h2)
}

func (c *cache) get(key string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	score, ok := c.byKey[key]
	c.mu.RUnlock()
	return score, ok
}

func (c *cache) put(key string, score float64) {
	if c == nil || key == "" {
		return
	}
	c.mu.Lock()
	c.byKey[key] = score
	c.mu.Unlock()
}
