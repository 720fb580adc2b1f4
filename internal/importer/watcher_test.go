package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWatcherIngestsExistingFiles(t *testing.T) {
	db := testDB(t)
	inbox := t.TempDir()

	path := filepath.Join(inbox, "contacts.csv")
	if err := os.WriteFile(path, []byte("name\nAlice\n"), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	w, err := NewWatcher(db, inbox)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	// The initial inbox scan runs synchronously.
	w.Start()

	f, err := db.GetFriendByName("Alice")
	if err != nil {
		t.Fatalf("GetFriendByName: %v", err)
	}
	if f == nil {
		t.Fatal("existing inbox file was not ingested")
	}

	if _, err := os.Stat(path + ".imported"); err != nil {
		t.Errorf("imported file not renamed: %v", err)
	}
}

func TestWatcherCreatesInbox(t *testing.T) {
	db := testDB(t)
	inbox := filepath.Join(t.TempDir(), "inbox")

	w, err := NewWatcher(db, inbox)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if _, err := os.Stat(inbox); err != nil {
		t.Errorf("inbox dir not created: %v", err)
	}
}
