package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/analysis"
	"transcript-processor/pkg/config"
	"transcript-processor/pkg/models"
	"transcript-processor/pkg/storage"
)

// ProgressEvent is pushed to subscribers as files and batches finish.
type ProgressEvent struct {
	Type     string               `json:"type"` // "file_done" | "batch_done"
	BatchID  string               `json:"batch_id"`
	Filename string               `json:"filename,omitempty"`
	Status   models.FileStatus    `json:"status,omitempty"`
	Reason   string               `json:"reason,omitempty"`
	Summary  *models.BatchSummary `json:"summary,omitempty"`
}

// Notifier receives progress events. Must be safe for concurrent calls.
type Notifier func(ProgressEvent)

// Manager runs transcript documents through the analysis and storage stages.
// Files are independent of each other; the batch accumulator is the only
// shared state and is guarded by its own mutex.
type Manager struct {
	config    config.PipelineConfig
	logger    *logrus.Logger
	analyzer  *analysis.Analyzer
	memStore  storage.MemoryStore
	diskStore storage.DiskStore

	ingestionCh chan *models.PipelineMessage
	analysisCh  chan *models.PipelineMessage
	storageCh   chan *models.PipelineMessage

	analysisPool *WorkerPool
	storagePool  *WorkerPool

	batches map[string]*models.BatchSummary
	batchMu sync.Mutex

	notifier   Notifier
	notifierMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg config.PipelineConfig, logger *logrus.Logger, analyzer *analysis.Analyzer, memStore storage.MemoryStore, diskStore storage.DiskStore) *Manager {
	return &Manager{
		config:    cfg,
		logger:    logger,
		analyzer:  analyzer,
		memStore:  memStore,
		diskStore: diskStore,

		ingestionCh: make(chan *models.PipelineMessage, cfg.QueueSize),
		analysisCh:  make(chan *models.PipelineMessage, cfg.QueueSize),
		storageCh:   make(chan *models.PipelineMessage, cfg.QueueSize),

		batches: make(map[string]*models.BatchSummary),
	}
}

func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.logger.Info("Pipeline manager starting")

	m.analysisPool = NewWorkerPool("analysis", m.config.AnalysisWorkers, m.logger, m.analyzeDocument)
	m.storagePool = NewWorkerPool("storage", m.config.StorageWorkers, m.logger, m.storeRecord)

	m.analysisPool.Start(m.ctx)
	m.storagePool.Start(m.ctx)

	m.wg.Add(3)
	go m.runIngestionStage()
	go m.runAnalysisStage()
	go m.runStorageStage()

	return nil
}

func (m *Manager) Stop() {
	m.logger.Info("Pipeline manager stopping")
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info("Pipeline manager stopped")
}

// SetNotifier registers the progress-event sink (the websocket hub).
func (m *Manager) SetNotifier(n Notifier) {
	m.notifierMu.Lock()
	defer m.notifierMu.Unlock()
	m.notifier = n
}

func (m *Manager) notify(event ProgressEvent) {
	m.notifierMu.RLock()
	n := m.notifier
	m.notifierMu.RUnlock()
	if n != nil {
		n(event)
	}
}

// SubmitBatch enqueues a multi-file run and returns its batch id. Per-file
// failures inside the batch never abort the run; they are folded into the
// batch summary.
func (m *Manager) SubmitBatch(docs []*models.TranscriptDocument) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("batch contains no documents")
	}

	summary := models.NewBatchSummary(len(docs))
	m.batchMu.Lock()
	m.batches[summary.BatchID] = summary
	m.batchMu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"batch_id": summary.BatchID,
		"files":    len(docs),
	}).Info("Batch submitted")

	for _, doc := range docs {
		msg := &models.PipelineMessage{
			BatchID: summary.BatchID,
			Doc:     doc,
			Stage:   "ingestion",
		}
		select {
		case m.ingestionCh <- msg:
		case <-m.ctx.Done():
			return "", fmt.Errorf("pipeline is shutting down")
		default:
			return "", fmt.Errorf("pipeline queue is full")
		}
	}

	return summary.BatchID, nil
}

// AnalyzeSync processes one document end to end on the caller's goroutine,
// bypassing the batch machinery. Used by the synchronous API path.
func (m *Manager) AnalyzeSync(doc *models.TranscriptDocument) (*models.FileAnalysisRecord, error) {
	record, err := m.analyzer.AnalyzeDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := m.memStore.StoreRecord(record); err != nil {
		return nil, fmt.Errorf("failed to store record in memory: %w", err)
	}
	if err := m.diskStore.StoreRecord(record); err != nil {
		return nil, fmt.Errorf("failed to store record on disk: %w", err)
	}
	return record, nil
}

// GetBatch returns a copy of the batch summary.
func (m *Manager) GetBatch(batchID string) (*models.BatchSummary, error) {
	m.batchMu.Lock()
	defer m.batchMu.Unlock()

	summary, exists := m.batches[batchID]
	if !exists {
		return nil, fmt.Errorf("batch %s not found", batchID)
	}

	copied := *summary
	copied.Files = append([]models.FileResult(nil), summary.Files...)
	return &copied, nil
}

func (m *Manager) runIngestionStage() {
	defer m.wg.Done()

	for {
		select {
		case msg := <-m.ingestionCh:
			m.logger.WithField("filename", msg.Doc.Filename).Debug("Ingested document")
			msg.Stage = "analysis"
			select {
			case m.analysisCh <- msg:
			case <-m.ctx.Done():
				return
			}

		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) runAnalysisStage() {
	defer m.wg.Done()

	for {
		select {
		case msg := <-m.analysisCh:
			m.analysisPool.Submit(msg)
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) runStorageStage() {
	defer m.wg.Done()

	for {
		select {
		case msg := <-m.storageCh:
			m.storagePool.Submit(msg)
		case <-m.ctx.Done():
			return
		}
	}
}
