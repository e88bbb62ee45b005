package services

import (
	"context"
	"log"
	"sync"
)

// IndexJob carries a session's documents to the background indexer so
// session creation never blocks on embedding calls.
type IndexJob struct {
	SessionID      string
	ResumeText     string
	JobDescription string
}

type Indexer interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSession(job IndexJob)
}

type indexer struct {
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
	jobQueue      chan IndexJob
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewIndexer(
	geminiService GeminiService,
	qdrantService QdrantService,
	chunker TextChunker,
	concurrency int,
) Indexer {
	return &indexer{
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       chunker,
		jobQueue:      make(chan IndexJob, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Indexer started successfully")
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	log.Println("🛑 Stopping indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Indexer stopped")
}

// EnqueueSession implements Indexer.
func (w *indexer) EnqueueSession(job IndexJob) {
	select {
	case w.jobQueue <- job:
		log.Printf("📥 Indexing job for session %s enqueued\n", job.SessionID)
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue session %s\n", job.SessionID)
	default:
		// Indexing is best-effort; a full queue drops the job rather
		// than blocking session creation.
		log.Printf("⚠️  Indexer queue full, dropping session %s\n", job.SessionID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			if err := w.indexSession(ctx, job); err != nil {
				log.Printf("❌ Indexer worker #%d failed for session %s: %v\n", workerID, job.SessionID, err)
			} else {
				log.Printf("✅ Indexer worker #%d indexed session %s\n", workerID, job.SessionID)
			}
		}
	}
}

func (w *indexer) indexSession(ctx context.Context, job IndexJob) error {
	documents := map[string]string{
		DocTypeResume:         job.ResumeText,
		DocTypeJobDescription: job.JobDescription,
	}

	for docType, text := range documents {
		for _, chunk := range w.chunker.ChunkText(text, 1000, 100) {
			embedding, err := w.geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				return err
			}

			if err := w.qdrantService.UpsertChunk(ctx, job.SessionID, docType, chunk, embedding); err != nil {
				return err
			}
		}
	}

	return nil
}
