package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Job 由 worker 執行的生成工作
type Job func(ctx context.Context) (string, error)

// request 隊列請求
type request struct {
	ctx    context.Context
	job    Job
	result chan result
}

// result 處理結果
type result struct {
	content string
	err     error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int  `json:"queue_length"`
	ProcessedCount int  `json:"processed_count"`
	FailedCount    int  `json:"failed_count"`
	MaxQueueSize   int  `json:"max_queue_size"`
	Workers        int  `json:"workers"`
	Closed         bool `json:"closed"`
}

// Manager 固定數量 worker 的有界隊列
type Manager struct {
	workers   int
	maxSize   int
	queue     chan *request
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	processed int64
	failed    int64
}

// NewManager 創建隊列並啟動 worker
func NewManager(cfg config.QueueConfig) *Manager {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 1
	}

	m := &Manager{
		workers: workers,
		maxSize: maxSize,
		queue:   make(chan *request, maxSize),
	}

	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	common.LogInfo("generation queue started",
		zap.Int("workers", workers),
		zap.Int("max_queue_size", maxSize),
	)
	return m
}

// Submit 將工作加入隊列並等待結果；隊列已滿時立即回傳 common.ErrQueueFull
func (m *Manager) Submit(ctx context.Context, job Job) (string, error) {
	req := &request{
		ctx:    ctx,
		job:    job,
		result: make(chan result, 1),
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return "", common.ErrQueueClosed
	}
	select {
	case m.queue <- req:
		m.mu.RUnlock()
	default:
		m.mu.RUnlock()
		common.LogWarn("generation queue is full", zap.Int("max_queue_size", m.maxSize))
		return "", common.ErrQueueFull
	}

	select {
	case res := <-req.result:
		return res.content, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Manager) worker() {
	defer m.wg.Done()

	for req := range m.queue {
		// 呼叫端已放棄的請求不再執行
		if err := req.ctx.Err(); err != nil {
			atomic.AddInt64(&m.failed, 1)
			req.result <- result{err: err}
			continue
		}

		content, err := req.job(req.ctx)
		if err != nil {
			atomic.AddInt64(&m.failed, 1)
		} else {
			atomic.AddInt64(&m.processed, 1)
		}
		req.result <- result{content: content, err: err}
	}
}

// Status 獲取隊列狀態
func (m *Manager) Status() *Status {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()

	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		FailedCount:    int(atomic.LoadInt64(&m.failed)),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
		Closed:         closed,
	}
}

// Close 停止接收新工作，等待已排入的工作完成
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	m.wg.Wait()
	common.LogInfo("generation queue stopped",
		zap.Int64("processed", atomic.LoadInt64(&m.processed)),
		zap.Int64("failed", atomic.LoadInt64(&m.failed)),
	)
}
