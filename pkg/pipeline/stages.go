package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/models"
	"transcript-processor/pkg/transcript"
)

// analyzeDocument is the analysis-pool worker. Exclusions (no participant
// id, empty document) finalize the file as failed with a human-readable
// reason; everything else moves on to storage.
func (m *Manager) analyzeDocument(ctx context.Context, msg *models.PipelineMessage) {
	record, err := m.analyzer.AnalyzeDocument(msg.Doc)
	if err != nil {
		msg.Err = err
		msg.Result = models.FileResult{
			Filename: msg.Doc.Filename,
			Status:   models.FileFailed,
			Reason:   failureReason(err),
		}
		m.completeFile(msg)
		return
	}

	msg.Record = record
	msg.Result = models.FileResult{
		Filename: msg.Doc.Filename,
		Status:   models.FileProcessed,
	}
	if len(record.Warnings) > 0 {
		msg.Result.Warning = record.Warnings[0]
	}
	msg.Stage = "storage"

	select {
	case m.storageCh <- msg:
	case <-ctx.Done():
	}
}

// storeRecord is the storage-pool worker: write-through to the memory store
// and the disk store, then finalize the file within its batch.
func (m *Manager) storeRecord(ctx context.Context, msg *models.PipelineMessage) {
	if err := m.memStore.StoreRecord(msg.Record); err != nil {
		msg.Err = fmt.Errorf("failed to store in memory: %w", err)
	} else if err := m.diskStore.StoreRecord(msg.Record); err != nil {
		msg.Err = fmt.Errorf("failed to store on disk: %w", err)
	}

	if msg.Err != nil {
		msg.Result = models.FileResult{
			Filename: msg.Doc.Filename,
			Status:   models.FileFailed,
			Reason:   msg.Err.Error(),
		}
	}

	m.completeFile(msg)
}

// completeFile folds one finished file into its batch summary and emits
// progress events. This is the pipeline's only fan-in point.
func (m *Manager) completeFile(msg *models.PipelineMessage) {
	m.batchMu.Lock()
	summary, exists := m.batches[msg.BatchID]
	if !exists {
		m.batchMu.Unlock()
		return
	}

	summary.Files = append(summary.Files, msg.Result)
	switch msg.Result.Status {
	case models.FileProcessed:
		summary.Processed++
	case models.FileFailed:
		summary.Failed++
	}
	if msg.Result.Warning != "" {
		summary.Warnings++
	}

	batchDone := summary.Processed+summary.Failed == summary.Submitted
	if batchDone {
		summary.Status = models.BatchCompleted
		completed := time.Now()
		summary.CompletedAt = &completed
	}
	snapshot := *summary
	snapshot.Files = append([]models.FileResult(nil), summary.Files...)
	m.batchMu.Unlock()

	m.notify(ProgressEvent{
		Type:     "file_done",
		BatchID:  msg.BatchID,
		Filename: msg.Result.Filename,
		Status:   msg.Result.Status,
		Reason:   msg.Result.Reason,
	})

	if batchDone {
		m.logger.WithFields(logrus.Fields{
			"batch_id":  snapshot.BatchID,
			"processed": snapshot.Processed,
			"failed":    snapshot.Failed,
		}).Info("Batch completed")

		m.notify(ProgressEvent{
			Type:    "batch_done",
			BatchID: msg.BatchID,
			Summary: &snapshot,
		})
	}
}

// failureReason maps exclusion errors to the reason strings reported in
// batch summaries.
func failureReason(err error) string {
	switch {
	case errors.Is(err, transcript.ErrParticipantNotFound):
		return "no participant identifier found in transcript"
	case errors.Is(err, transcript.ErrEmptyDocument):
		return "document text is empty"
	default:
		return err.Error()
	}
}
