package hal

import (
	"sync"

	"modemhal-go/x/conv"
)

// Store is the key-value backend for modem persistence. Load copies up to
// len(p) bytes of the stored value and reports how many were copied.
type Store interface {
	Save(key string, p []byte) error
	Load(key string, p []byte) (int, error)
}

// MemStore is a process-local Store. Values do not survive a restart.
type MemStore struct {
	mu sync.Mutex
	kv map[string][]byte
}

func NewMemStore() *MemStore { return &MemStore{kv: map[string][]byte{}} }

func (m *MemStore) Save(key string, p []byte) error {
	m.mu.Lock()
	m.kv[key] = append([]byte(nil), p...)
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Load(key string, p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return 0, ErrNotFound
	}
	return copy(p, v), nil
}

const (
	contextKeyPrefix = "modem/context/"
	crashlogKey      = "modem/crashlog"
	crashlogStatKey  = "modem/crashlog_status"
)

func contextKey(ctxType uint32) string {
	return string(conv.AppendUint([]byte(contextKeyPrefix), uint64(ctxType)))
}

// ContextStore persists one modem context blob.
func (h *HAL) ContextStore(ctxType uint32, p []byte) error {
	key := contextKey(ctxType)
	if err := h.cfg.Store.Save(key, p); err != nil {
		h.log.Error("context store failed", "key", key, "err", err)
		return err
	}
	return nil
}

// ContextRestore fills p from the stored blob. Missing or short data is
// logged and the unread part of p is zeroed.
func (h *HAL) ContextRestore(ctxType uint32, p []byte) error {
	return h.load(contextKey(ctxType), p)
}

func (h *HAL) load(key string, p []byte) error {
	n, err := h.cfg.Store.Load(key, p)
	if err == nil && n < len(p) {
		err = ErrShortRead
	}
	if err != nil {
		h.log.Error("restore failed", "key", key, "want", len(p), "got", n, "err", err)
		clear(p[max(n, 0):])
	}
	return err
}
