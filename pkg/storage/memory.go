package storage

import (
	"errors"
	"sort"
	"sync"

	"transcript-processor/pkg/models"
)

// ErrRecordNotFound is returned when no analysis record exists for a
// filename.
var ErrRecordNotFound = errors.New("analysis record not found")

type MemoryStore interface {
	StoreRecord(record *models.FileAnalysisRecord) error
	GetRecord(filename string) (*models.FileAnalysisRecord, error)
	ListByParticipant(patientID string) ([]*models.FileAnalysisRecord, error)
	Count() int
}

type memoryStore struct {
	records map[string]*models.FileAnalysisRecord
	mu      sync.RWMutex
}

func NewMemoryStore() MemoryStore {
	return &memoryStore{
		records: make(map[string]*models.FileAnalysisRecord),
	}
}

func (s *memoryStore) StoreRecord(record *models.FileAnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Metadata.Filename] = record
	return nil
}

func (s *memoryStore) GetRecord(filename string) (*models.FileAnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[filename]
	if !exists {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *memoryStore) ListByParticipant(patientID string) ([]*models.FileAnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*models.FileAnalysisRecord
	for _, record := range s.records {
		if record.Metadata.PatientID == patientID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Metadata.Filename < records[j].Metadata.Filename
	})
	return records, nil
}

func (s *memoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
