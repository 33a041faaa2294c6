package dict

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrInvalidEntry is returned by Add for malformed correction entries.
var ErrInvalidEntry = errors.New("invalid correction entry")

// StorageError reports a failed persistence operation. The in-memory state of
// the dictionary remains valid when it occurs.
type StorageError struct {
	Path string
	Op   string // "load" or "save"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("dictionary %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Entry is one correction rule mapping an erroneous substring to its fix.
type Entry struct {
	Error   string `json:"error"`
	Correct string `json:"correct"`
}

// Snapshot is a point-in-time copy of both dictionary layers. Correction
// passes work on a snapshot so a concurrent Add or Remove can never tear an
// in-progress iteration.
type Snapshot struct {
	Default map[string]string
	User    map[string]string
}

// EffectiveLayers returns both layers ready for ordered application: default
// entries shadowed by a user entry with the same key are dropped, so the user
// correction is the one that fires, while the user layer still runs second
// and can re-correct text the default layer already touched.
func (s Snapshot) EffectiveLayers() (defaults, user map[string]string) {
	if len(s.User) == 0 {
		return s.Default, s.User
	}
	defaults = make(map[string]string, len(s.Default))
	for k, v := range s.Default {
		if _, ok := s.User[k]; !ok {
			defaults[k] = v
		}
	}
	return defaults, s.User
}

// Effective overlays the user layer on the default layer.
func (s Snapshot) Effective() map[string]string {
	out := make(map[string]string, len(s.Default)+len(s.User))
	for k, v := range s.Default {
		out[k] = v
	}
	for k, v := range s.User {
		out[k] = v
	}
	return out
}

// Dictionary is the layered correction dictionary: a read-only built-in
// default layer plus a mutable user layer persisted at a configurable path.
// Mutations are written through to storage immediately.
type Dictionary struct {
	mu     sync.RWMutex
	path   string
	user   map[string]string
	logger *slog.Logger
}

// New creates a dictionary backed by the given storage path and loads the
// user layer. A missing or malformed file degrades to an empty user layer
// (with a warning) rather than failing construction.
func New(path string, logger *slog.Logger) *Dictionary {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dictionary{
		path:   path,
		user:   make(map[string]string),
		logger: logger,
	}
	if err := d.Load(); err != nil {
		// Corruption must never block startup.
		d.logger.Warn("failed to load user dictionary, starting empty",
			"path", path, "error", err)
	}
	return d
}

// Path returns the user-layer storage location.
func (d *Dictionary) Path() string { return d.path }

// Snapshot returns copies of both layers.
func (d *Dictionary) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user := make(map[string]string, len(d.user))
	for k, v := range d.user {
		user[k] = v
	}
	return Snapshot{Default: DefaultCorrections(), User: user}
}

// Effective returns the merged mapping with user entries overriding default
// entries on key collision. Pure read, no side effects.
func (d *Dictionary) Effective() map[string]string {
	return d.Snapshot().Effective()
}

// UserEntries returns the user layer sorted by key, for display and export.
func (d *Dictionary) UserEntries() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := make([]string, 0, len(d.user))
	for k := range d.user {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Error: k, Correct: d.user[k]})
	}
	return entries
}

// Add inserts or overwrites an entry in the user layer and persists the layer
// immediately. It returns ErrInvalidEntry when the key is empty or equal to
// its correction. A persistence failure is returned as a *StorageError, but
// the in-memory layer still reflects the change.
func (d *Dictionary) Add(errText, correct string) error {
	if errText == "" || errText == correct {
		return fmt.Errorf("%w: error=%q correct=%q", ErrInvalidEntry, errText, correct)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.user[errText] = correct
	if err := d.saveLocked(); err != nil {
		d.logger.Error("dictionary persist failed after add",
			"path", d.path, "error", err)
		return err
	}
	return nil
}

// Remove deletes an entry from the user layer. Removing a key that is not
// present is a no-op, not an error; the layer is persisted only when
// something changed.
func (d *Dictionary) Remove(errText string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.user[errText]; !ok {
		return nil
	}
	delete(d.user, errText)
	if err := d.saveLocked(); err != nil {
		d.logger.Error("dictionary persist failed after remove",
			"path", d.path, "error", err)
		return err
	}
	return nil
}

// Load replaces the user layer with the contents of the storage file. A
// missing file yields an empty layer and no error; malformed content yields
// an empty layer and a *StorageError so callers can surface a warning.
func (d *Dictionary) Load() error {
	entries, err := readUserLayer(d.path)

	d.mu.Lock()
	defer d.mu.Unlock()
	if entries == nil {
		entries = make(map[string]string)
	}
	d.user = entries
	return err
}

// Save persists the current user layer to the storage file.
func (d *Dictionary) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveLocked()
}

func (d *Dictionary) saveLocked() error {
	return writeUserLayer(d.path, d.user)
}
