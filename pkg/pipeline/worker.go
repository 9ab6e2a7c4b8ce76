package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/models"
)

// WorkerPool runs one pipeline stage's work function across a fixed number
// of goroutines fed from a buffered queue.
type WorkerPool struct {
	name       string
	workers    int
	logger     *logrus.Logger
	taskQueue  chan *models.PipelineMessage
	workerFunc func(context.Context, *models.PipelineMessage)
	wg         sync.WaitGroup
}

func NewWorkerPool(name string, workers int, logger *logrus.Logger, workerFunc func(context.Context, *models.PipelineMessage)) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		name:       name,
		workers:    workers,
		logger:     logger,
		taskQueue:  make(chan *models.PipelineMessage, workers*2),
		workerFunc: workerFunc,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	wp.logger.WithFields(logrus.Fields{
		"pool":    wp.name,
		"workers": wp.workers,
	}).Debug("Starting worker pool")

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}
}

func (wp *WorkerPool) Submit(msg *models.PipelineMessage) {
	wp.taskQueue <- msg
}

func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()

	for {
		select {
		case msg, ok := <-wp.taskQueue:
			if !ok {
				return
			}
			wp.workerFunc(ctx, msg)

		case <-ctx.Done():
			return
		}
	}
}
