//
// Contoso is pleased to support the open source community by making creative-eval available.
//
// Copyright (C) 2026 Contoso.  All rights reserved.
//
// creative-eval is licensed under the Apache License Version 2.0.
//
//

package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/contoso/creative-eval/evaluation/evaluator"
	"github.com/contoso/creative-eval/evaluation/metric"
	"github.com/contoso/creative-eval/evaluation/service"
)

type recordEvalParam struct {
	idx     int
	ctx     context.Context
	record  *evaluator.Record
	metrics []*metric.EvalMetric
	opts    *service.Options
	svc     *local
	results []*service.RecordResult
	wg      *sync.WaitGroup
}

func (p *recordEvalParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.record = nil
	p.metrics = nil
	p.opts = nil
	p.svc = nil
	p.results = nil
	p.wg = nil
}

var recordEvalParamPool = &sync.Pool{
	New: func() any { return new(recordEvalParam) },
}

func createRecordEvalPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*recordEvalParam)
		if !ok {
			panic("record evaluation pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			recordEvalParamPool.Put(param)
		}()
		param.results[param.idx] = param.svc.evaluateRecord(param.ctx, param.record, param.metrics, param.opts)
	})
	if err != nil {
		return nil, fmt.Errorf("create record evaluation pool: %w", err)
	}
	return pool, nil
}

func (s *local) ensureRecordEvalPool(size int) error {
	s.recordEvalPoolOnce.Do(func() {
		if s.recordEvalPool != nil {
			return
		}
		pool, err := createRecordEvalPool(size)
		if err != nil {
			s.recordEvalPoolErr = err
			return
		}
		s.recordEvalPool = pool
	})
	return s.recordEvalPoolErr
}
