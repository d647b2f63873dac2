package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pierrec/lz4"
)

var ErrNotFound = errors.New("no save on disk")

// lz4FrameMagic prefixes every lz4 frame; loads sniff it so a repo can read
// both compressed and plain saves regardless of its own Compress setting.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// FileRepo stores one snapshot per file. Writes go through a temp file and
// rename so a crash mid-write never corrupts the previous save.
type FileRepo struct {
	mu       sync.Mutex
	path     string
	compress bool
}

func NewFileRepo(dataDir string, compress bool) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepo{
		path:     filepath.Join(dataDir, "save.json"),
		compress: compress,
	}, nil
}

func (r *FileRepo) Path() string { return r.path }

func (r *FileRepo) Save(snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if r.compress {
		if b, err = compressLZ4(b); err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRepo) Load() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	if bytes.HasPrefix(b, lz4FrameMagic) {
		if b, err = decompressLZ4(b); err != nil {
			return Snapshot{}, err
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
