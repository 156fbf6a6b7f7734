package save

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"AITycoon/internal/model"
)

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Store persists the save blob to a single file.
type Store struct {
	path string
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the save file location.
func (s *Store) Path() string { return s.path }

// Load reads the saved state. Returns ErrNoSave if the file doesn't exist.
func (s *Store) Load() (*model.GameState, time.Time, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, ErrNoSave
		}
		return nil, time.Time{}, fmt.Errorf("read save: %w", err)
	}
	return Unmarshal(data)
}

// Quarantine moves an unreadable save aside to <path>.corrupt so a new game
// can start without overwriting it. Returns the backup path.
func (s *Store) Quarantine() (string, error) {
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		return "", fmt.Errorf("quarantine save: %w", err)
	}
	return backup, nil
}

// Save writes state stamped with at. The previous file stays intact if the
// write fails.
func (s *Store) Save(state *model.GameState, at time.Time) error {
	data, err := Marshal(state, at)
	if err != nil {
		return err
	}
	return writeAtomic(s.path, data)
}

// Export copies state to path. Paths ending in .zst are zstd-compressed.
func Export(path string, state *model.GameState, at time.Time) error {
	data, err := Marshal(state, at)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".zst") {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return fmt.Errorf("compress save: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("compress save: %w", err)
		}
		data = buf.Bytes()
	}
	return writeAtomic(path, data)
}

// Import reads an exported file, compressed or not, and validates it.
func Import(path string) (*model.GameState, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read import: %w", err)
	}
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		data, err = io.ReadAll(dec)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: decompress: %v", ErrInvalidSave, err)
		}
	}
	return Unmarshal(data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Sync()
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, werr)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
