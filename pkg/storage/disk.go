package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"

	"transcript-processor/pkg/models"
)

// Badger key layout: "file/<filename>" holds the JSON record, and
// "participant/<patient_id>/<filename>" is an index entry pointing back at
// the filename for prefix scans.
const (
	filePrefix        = "file/"
	participantPrefix = "participant/"
)

type DiskStore interface {
	StoreRecord(record *models.FileAnalysisRecord) error
	GetRecord(filename string) (*models.FileAnalysisRecord, error)
	ListByParticipant(patientID string) ([]*models.FileAnalysisRecord, error)
	Close() error
}

type diskStore struct {
	db *badger.DB
}

func NewDiskStore(path string) (DiskStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(path, "badger"))
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &diskStore{db: db}, nil
}

func (s *diskStore) StoreRecord(record *models.FileAnalysisRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	fileKey := []byte(filePrefix + record.Metadata.Filename)
	indexKey := []byte(participantPrefix + record.Metadata.PatientID + "/" + record.Metadata.Filename)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(fileKey, data); err != nil {
			return err
		}
		return txn.Set(indexKey, []byte(record.Metadata.Filename))
	})
}

func (s *diskStore) GetRecord(filename string) (*models.FileAnalysisRecord, error) {
	var record models.FileAnalysisRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(filePrefix + filename))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return &record, nil
}

func (s *diskStore) ListByParticipant(patientID string) ([]*models.FileAnalysisRecord, error) {
	var filenames []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(participantPrefix + patientID + "/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				filenames = append(filenames, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan participant index: %w", err)
	}

	records := make([]*models.FileAnalysisRecord, 0, len(filenames))
	for _, filename := range filenames {
		record, err := s.GetRecord(filename)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *diskStore) Close() error {
	return s.db.Close()
}
