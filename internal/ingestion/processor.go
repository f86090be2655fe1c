package ingestion

import (
	"context"
	"sync"
	"time"

	"fleet-device-manager/internal/domain/soti"
	"fleet-device-manager/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Processor buffers presence snapshots and upserts them in batches. The core
// never writes presence rows; this is the only writer.
type Processor struct {
	writer soti.Writer

	buffer []*soti.PresenceRecord

	batchSize    int
	batchTimeout time.Duration
	workerCount  int
	bufferSize   int

	presenceChan chan *PresenceMessage

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex

	metrics *MetricsTracker
}

// NewProcessor creates a new presence feed processor
func NewProcessor(writer soti.Writer, batchSize, workerCount, bufferSize int, batchTimeout time.Duration) *Processor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		writer:       writer,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
		workerCount:  workerCount,
		bufferSize:   bufferSize,
		buffer:       make([]*soti.PresenceRecord, 0, batchSize),
		presenceChan: make(chan *PresenceMessage, bufferSize),
		ctx:          ctx,
		cancel:       cancel,
		metrics:      NewMetricsTracker(),
	}
}

// Start starts the processor workers
func (p *Processor) Start() {
	logger.Info("Starting presence feed processor",
		zap.Int("workers", p.workerCount),
		zap.Int("batch_size", p.batchSize),
		zap.Duration("batch_timeout", p.batchTimeout),
	)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.wg.Add(1)
	go p.batchFlusher()
}

// Stop drains the workers and flushes what is still buffered.
func (p *Processor) Stop() {
	p.cancel()
	close(p.presenceChan)
	p.wg.Wait()
	p.flushBatch()
	logger.Info("Presence feed processor stopped")
}

// ProcessPresence queues a presence snapshot for processing. Messages are
// dropped when the buffer is full; the feed re-publishes full snapshots so a
// drop only delays convergence.
func (p *Processor) ProcessPresence(msg *PresenceMessage) {
	select {
	case p.presenceChan <- msg:
		p.metrics.Update(func(m *FeedMetrics) {
			m.MessagesReceived++
			m.BufferSize = len(p.presenceChan)
		})
	case <-p.ctx.Done():
		return
	default:
		logger.Warn("Presence buffer full, dropping message", zap.String("imei", msg.IMEI))
		p.metrics.Update(func(m *FeedMetrics) {
			m.MessagesFailed++
		})
	}
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case msg, ok := <-p.presenceChan:
			if !ok {
				return
			}
			if err := p.processMessage(msg); err != nil {
				logger.Warn("Invalid presence message",
					zap.Int("worker", id),
					zap.String("imei", msg.IMEI),
					zap.Error(err),
				)
				p.metrics.Update(func(m *FeedMetrics) {
					m.MessagesFailed++
				})
				continue
			}
			p.metrics.Update(func(m *FeedMetrics) {
				m.MessagesProcessed++
				m.LastProcessedAt = time.Now()
			})

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Processor) processMessage(msg *PresenceMessage) error {
	active, err := ValidatePresence(msg)
	if err != nil {
		return err
	}

	record := &soti.PresenceRecord{
		ID:           uuid.New(),
		IMEI:         msg.IMEI,
		DeviceName:   msg.DeviceName,
		AssignedUser: msg.AssignedUser,
		IsActive:     active,
		LastSyncAt:   msg.LastSync,
		UpdatedAt:    msg.Timestamp,
	}

	p.mu.Lock()
	p.buffer = append(p.buffer, record)
	shouldFlush := len(p.buffer) >= p.batchSize
	p.mu.Unlock()

	if shouldFlush {
		p.flushBatch()
	}
	return nil
}

func (p *Processor) batchFlusher() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.flushBatch()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Processor) flushBatch() {
	p.mu.Lock()
	if len(p.buffer) == 0 {
		p.mu.Unlock()
		return
	}
	batch := make([]*soti.PresenceRecord, len(p.buffer))
	copy(batch, p.buffer)
	p.buffer = p.buffer[:0]
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.writer.BatchUpsert(ctx, batch); err != nil {
		logger.Error("Failed to upsert presence batch",
			zap.Int("records", len(batch)),
			zap.Error(err),
		)
		p.metrics.Update(func(m *FeedMetrics) {
			m.MessagesFailed += int64(len(batch))
		})
		return
	}

	p.metrics.Update(func(m *FeedMetrics) {
		m.RecordsUpserted += int64(len(batch))
	})
}

// GetMetrics returns current feed metrics
func (p *Processor) GetMetrics() FeedMetrics {
	return p.metrics.Snapshot()
}
