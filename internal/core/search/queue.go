package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"go.uber.org/zap"
)

// QueueRequest is one search request waiting for a worker.
type QueueRequest struct {
	Context context.Context
	Query   string
	TopK    int
	Result  chan *Response
}

// QueueStatus reports worker pool counters.
type QueueStatus struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Queue bounds concurrent searches behind a fixed worker pool so bursts
// queue instead of stacking upstream calls.
type Queue struct {
	config    *config.Config
	service   *Service
	queue     chan *QueueRequest
	done      chan struct{}
	processed int64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewQueue creates the worker pool and starts its workers.
func NewQueue(cfg *config.Config, service *Service) *Queue {
	q := &Queue{
		config:  cfg,
		service: service,
		queue:   make(chan *QueueRequest, cfg.Queue.MaxSize),
		done:    make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	common.LogInfo("search queue started",
		zap.Int("workers", cfg.Queue.Workers),
		zap.Int("max_queue_size", cfg.Queue.MaxSize),
	)

	return q
}

// Enqueue submits a search and returns the channel its response will
// arrive on.
func (q *Queue) Enqueue(ctx context.Context, query string, topK int) (chan *Response, error) {
	select {
	case <-q.done:
		return nil, fmt.Errorf("search queue is closed")
	default:
	}

	if len(q.queue) >= q.config.Queue.MaxSize {
		return nil, fmt.Errorf("queue is full")
	}

	req := &QueueRequest{
		Context: ctx,
		Query:   query,
		TopK:    topK,
		Result:  make(chan *Response, 1),
	}

	select {
	case q.queue <- req:
		return req.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		return nil, fmt.Errorf("search queue is closed")
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for {
		select {
		case req := <-q.queue:
			if req == nil {
				return
			}
			resp := q.service.Ask(req.Context, req.Query, req.TopK)
			atomic.AddInt64(&q.processed, 1)
			req.Result <- resp
		case <-q.done:
			return
		}
	}
}

// Status reports the queue counters.
func (q *Queue) Status() *QueueStatus {
	return &QueueStatus{
		QueueLength:    len(q.queue),
		ProcessedCount: int(atomic.LoadInt64(&q.processed)),
		MaxQueueSize:   q.config.Queue.MaxSize,
		Workers:        q.config.Queue.Workers,
	}
}

// Close stops the workers and waits for in-flight searches to finish.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	q.wg.Wait()
}
