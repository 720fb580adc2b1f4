package importer

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lazypower/tend/internal/store"
)

// Watcher ingests CSV files dropped into an inbox directory. Events
// are debounced per file because editors and file managers fire
// several writes for one save.
type Watcher struct {
	db        *store.DB
	inbox     string
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer

	debounce time.Duration
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the given inbox directory, creating
// it if needed.
func NewWatcher(db *store.DB, inbox string) (*Watcher, error) {
	if err := os.MkdirAll(inbox, 0755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(inbox); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		db:        db,
		inbox:     inbox,
		fsWatcher: fw,
		pending:   make(map[string]*time.Timer),
		debounce:  500 * time.Millisecond,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start processes any CSVs already sitting in the inbox, then watches
// for new drops until Stop is called.
func (w *Watcher) Start() {
	entries, err := os.ReadDir(w.inbox)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && isCSV(e.Name()) {
				w.ingest(filepath.Join(w.inbox, e.Name()))
			}
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !isCSV(event.Name) {
					continue
				}
				w.schedule(event.Name)
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Printf("inbox watcher: %v", err)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.fsWatcher.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.pending {
		t.Stop()
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(path)
	})
}

func (w *Watcher) ingest(path string) {
	res, err := ImportFile(w.db, path, time.Now())
	if err != nil {
		log.Printf("inbox import %s: %v", filepath.Base(path), err)
		return
	}
	log.Printf("inbox import %s: %d added, %d duplicates, %d skipped",
		filepath.Base(path), res.Added, len(res.Duplicates), len(res.Skipped))

	// Rename so an edit-save loop can't re-import the same file.
	if err := os.Rename(path, path+".imported"); err != nil {
		log.Printf("inbox import: rename %s: %v", filepath.Base(path), err)
	}
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
