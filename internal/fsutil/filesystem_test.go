package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystemReadWrite(t *testing.T) {
	mem := NewMemoryFileSystem()
	mem.WriteFile("/scans/240115a/240115-run1a.nirb", []byte("payload"))

	f, err := mem.Open("/scans/240115a/240115-run1a.nirb")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("read %q, want payload", data)
	}
}

func TestMemoryFileSystemOpenMissing(t *testing.T) {
	mem := NewMemoryFileSystem()
	_, err := mem.Open("/absent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystemCreate(t *testing.T) {
	mem := NewMemoryFileSystem()
	w, err := mem.Create("/out/result.nirb")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("merged")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !mem.Exists("/out/result.nirb") {
		t.Error("file missing after Close")
	}
	info, err := mem.Stat("/out/result.nirb")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != int64(len("merged")) {
		t.Errorf("Size = %d, want %d", info.Size(), len("merged"))
	}
}

func TestMemoryFileSystemImplicitParents(t *testing.T) {
	mem := NewMemoryFileSystem()
	mem.WriteFile("/a/b/c.bin", []byte{1})

	if !mem.Exists("/a/b") || !mem.Exists("/a") {
		t.Error("parent directories missing after WriteFile")
	}
	info, err := mem.Stat("/a/b")
	if err != nil || !info.IsDir() {
		t.Errorf("Stat(/a/b) = %v, %v; want directory", info, err)
	}
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	osfs := OSFileSystem{}

	if err := osfs.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	path := filepath.Join(dir, "sub", "file.bin")
	w, err := osfs.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("abc")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !osfs.Exists(path) {
		t.Error("Exists = false after Create")
	}
	f, err := osfs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "abc" {
		t.Errorf("read %q, want abc", data)
	}

	if osfs.Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists = true for missing file")
	}
	if _, err := osfs.Stat(filepath.Join(dir, "nope")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat err = %v, want os.ErrNotExist", err)
	}
}
