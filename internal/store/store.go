package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName    = "history.db"
	lastSearchKey = "lastSearchQuery"
	openTimeout   = 1 * time.Second
)

var bucketHistory = []byte("history")

// historyRecord is the stored form of the saved query
type historyRecord struct {
	Query   string    `json:"query"`
	SavedAt time.Time `json:"saved_at"`
}

// HistoryStore implements domain.HistoryStore using BoltDB.
// The saved query is mirrored in memory so reads never touch disk twice.
type HistoryStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex

	cached *historyRecord
	loaded bool
}

// NewHistoryStore opens (or creates) the history database in dir.
// An empty dir gives a memory-only store.
func NewHistoryStore(dir string, logger *slog.Logger) (*HistoryStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		return &HistoryStore{logger: logger, loaded: true}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{db: db, logger: logger}, nil
}

func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LastQuery returns the saved query, false if none was saved
func (s *HistoryStore) LastQuery() (string, bool) {
	rec, ok := s.record()
	if !ok || strings.TrimSpace(rec.Query) == "" {
		return "", false
	}
	return rec.Query, true
}

// SaveLastQuery overwrites the saved query. The in-memory copy changes
// only once the write is committed.
func (s *HistoryStore) SaveLastQuery(query string) error {
	rec := &historyRecord{Query: query, SavedAt: time.Now().UTC()}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketHistory).Put([]byte(lastSearchKey), data)
		})
		if err != nil {
			return fmt.Errorf("failed to save query: %w", err)
		}
	}

	s.cached = rec
	s.loaded = true
	return nil
}

// Clear forgets the saved query
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketHistory).Delete([]byte(lastSearchKey))
		})
		if err != nil {
			return fmt.Errorf("failed to clear query: %w", err)
		}
	}

	s.cached = nil
	s.loaded = true
	return nil
}

// record returns the saved record, loading it from disk on first use.
// A failed read is logged and retried on the next call.
func (s *HistoryStore) record() (historyRecord, bool) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		if s.cached == nil {
			return historyRecord{}, false
		}
		return *s.cached, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		// Loaded or saved while we waited
		if s.cached == nil {
			return historyRecord{}, false
		}
		return *s.cached, true
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(lastSearchKey)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to read saved query", "error", err)
		return historyRecord{}, false
	}

	var rec *historyRecord
	if data != nil {
		var decoded historyRecord
		if err := json.Unmarshal(data, &decoded); err != nil {
			s.logger.Warn("ignoring unreadable saved query", "error", err)
		} else {
			rec = &decoded
			s.logger.Debug("loaded saved query", "query", rec.Query, "savedAt", rec.SavedAt)
		}
	}

	s.cached = rec
	s.loaded = true
	if rec == nil {
		return historyRecord{}, false
	}
	return *rec, true
}
