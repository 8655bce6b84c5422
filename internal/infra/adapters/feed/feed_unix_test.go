//go:build unix

package feed

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

// A run that opened the lock file before the previous holder released
// it must still contend with later runs.
func TestLockFileSurvivesUnlock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "feed.xml")
	unlockA, err := New(path).Lock(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.OpenFile(path+lockSuffix, os.O_RDWR, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	unlockA()
	if _, err := os.Stat(path + lockSuffix); err != nil {
		t.Fatalf("lock file removed on unlock: %v", err)
	}
	unlockC, err := New(path).Lock(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer unlockC()
	if err := syscall.Flock(int(b.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err == nil {
		syscall.Flock(int(b.Fd()), syscall.LOCK_UN)
		t.Fatal("two handles hold the feed lock at once")
	}
}
