package tui

import (
	"sync"

	"github.com/theirongolddev/pcalc/internal/logger"
	"github.com/theirongolddev/pcalc/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SavedMsg reports the outcome of a background snapshot write. Skipped
// is set when a newer write for the same key had already landed.
type SavedMsg struct {
	Key     string
	Err     error
	Skipped bool
}

// persister writes snapshots off the update loop. Writes for the same key
// may complete out of order; a write older than the last one applied for
// its key is dropped.
type persister struct {
	db *store.Store

	seq uint64 // only touched from Update

	mu      sync.Mutex
	written map[string]uint64
}

func newPersister(db *store.Store) *persister {
	return &persister{db: db, written: make(map[string]uint64)}
}

// save returns a command running fn against the store. A nil persister or
// store makes it a no-op, which keeps the model usable in tests.
func (p *persister) save(key string, fn func(*store.Store) error) tea.Cmd {
	if p == nil || p.db == nil {
		return nil
	}
	p.seq++
	seq := p.seq

	return func() tea.Msg {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.written[key] > seq {
			return SavedMsg{Key: key, Skipped: true}
		}
		p.written[key] = seq

		err := fn(p.db)
		if err != nil {
			logger.Get().Warn("snapshot write failed", zap.String("key", key), zap.Error(err))
		} else {
			logger.Get().Debug("snapshot written", zap.String("key", key), zap.Uint64("seq", seq))
		}
		return SavedMsg{Key: key, Err: err}
	}
}
