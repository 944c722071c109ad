package tracker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopmonkeyus/go-common/logger"
	"github.com/tidwall/buntdb"
)

const (
	documentPrefix = "doc:"
	documentIndex  = "documents"
)

type TrackerConfig struct {
	Context context.Context
	Logger  logger.Logger
	Dir     string
}

// Tracker remembers the content hash of every document written by a previous run so that unchanged
// documents can be skipped.
type Tracker struct {
	ctx    context.Context
	logger logger.Logger
	db     *buntdb.DB
	once   sync.Once
}

// Close will close the tracker and the underlying database.
func (t *Tracker) Close() error {
	t.logger.Debug("closing")
	var err error
	t.once.Do(func() {
		t.db.Shrink()
		err = t.db.Close()
	})
	t.logger.Debug("closed")
	return err
}

// GetKey will return the value of the key from the database.
func (t *Tracker) GetKey(key string) (bool, string, error) {
	var value string
	var found bool
	err := t.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key, false)
		if err != nil {
			if err == buntdb.ErrNotFound {
				return nil
			}
			return err
		}
		value = val
		found = true
		return nil
	})
	if err != nil {
		return found, "", fmt.Errorf("failed to get key: %w", err)
	}
	return found, value, nil
}

// SetKey will set the key to the value in the database.
func (t *Tracker) SetKey(key, value string, expires time.Duration) error {
	err := t.db.Update(func(tx *buntdb.Tx) error {
		var opts *buntdb.SetOptions
		if expires > 0 {
			opts = &buntdb.SetOptions{Expires: true, TTL: expires}
		}
		_, _, err := tx.Set(key, value, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

// Changed returns true if the document id was not written before or was written with a different hash.
func (t *Tracker) Changed(id string, hash string) (bool, error) {
	found, val, err := t.GetKey(documentPrefix + id)
	if err != nil {
		return false, err
	}
	return !found || val != hash, nil
}

// Record stores the hashes of the written documents keyed by document id.
func (t *Tracker) Record(hashes map[string]string) error {
	if len(hashes) == 0 {
		return nil
	}
	err := t.db.Update(func(tx *buntdb.Tx) error {
		for id, hash := range hashes {
			if _, _, err := tx.Set(documentPrefix+id, hash, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record documents: %w", err)
	}
	t.logger.Trace("recorded %d documents", len(hashes))
	return nil
}

// Documents returns the ids of every recorded document in ascending order.
func (t *Tracker) Documents() ([]string, error) {
	var ids []string
	err := t.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(documentPrefix+"*", func(key, _ string) bool {
			ids = append(ids, strings.TrimPrefix(key, documentPrefix))
			return t.ctx.Err() == nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return ids, nil
}

// Forget removes the recorded documents which are not in seen and returns their ids. These are the
// documents of entries that were deleted from the source since the previous run.
func (t *Tracker) Forget(seen map[string]bool) ([]string, error) {
	ids, err := t.Documents()
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, id := range ids {
		if !seen[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}
	err = t.db.Update(func(tx *buntdb.Tx) error {
		for _, id := range stale {
			if _, err := tx.Delete(documentPrefix + id); err != nil && err != buntdb.ErrNotFound {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to forget documents: %w", err)
	}
	return stale, nil
}

// TrackerFilenameFromDir returns the filename for the tracker database based on a specific directory.
func TrackerFilenameFromDir(dir string) string {
	return filepath.Join(dir, "contentful-to-sanity.db")
}

// NewTracker will create a new tracker with the given configuration.
func NewTracker(config TrackerConfig) (*Tracker, error) {
	var tracker Tracker

	db, err := buntdb.Open(TrackerFilenameFromDir(config.Dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	var dbcfg buntdb.Config
	if err := db.ReadConfig(&dbcfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read db config: %w", err)
	}
	dbcfg.SyncPolicy = buntdb.EverySecond
	if err := db.SetConfig(dbcfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set db config: %w", err)
	}
	if err := db.CreateIndex(documentIndex, documentPrefix+"*", buntdb.IndexString); err != nil && err != buntdb.ErrIndexExists {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	tracker.db = db
	tracker.ctx = config.Context
	if tracker.ctx == nil {
		tracker.ctx = context.Background()
	}
	tracker.logger = config.Logger.WithPrefix("[tracker]")

	return &tracker, nil
}
