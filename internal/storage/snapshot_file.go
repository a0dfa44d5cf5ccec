package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/deusflow/ainexus/internal/snapshot"
)

// ErrLocked means the output file could not be opened for writing, typically
// because another program holds it open.
var ErrLocked = errors.New("snapshot file is locked or not writable")

// SnapshotFile writes a snapshot as a script assignment: `<variable> = <json>;`.
type SnapshotFile struct {
	filePath string
	variable string
}

func NewSnapshotFile(filePath, variable string) *SnapshotFile {
	return &SnapshotFile{filePath: filePath, variable: variable}
}

func (sf *SnapshotFile) Path() string { return sf.filePath }

// Encode renders the file contents: pretty JSON with two-space indent and no
// HTML or non-ASCII escaping.
func (sf *SnapshotFile) Encode(s *snapshot.Snapshot) ([]byte, error) {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var out bytes.Buffer
	out.Grow(body.Len() + len(sf.variable) + 8)
	out.WriteString(sf.variable)
	out.WriteString(" = ")
	out.Write(bytes.TrimRight(body.Bytes(), "\n"))
	out.WriteString(";\n")
	return out.Bytes(), nil
}

// Save overwrites the file with s.
func (sf *SnapshotFile) Save(s *snapshot.Snapshot) error {
	data, err := sf.Encode(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(sf.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(sf.filePath, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: close any program that has %s open and run again: %v", ErrLocked, sf.filePath, err)
		}
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
