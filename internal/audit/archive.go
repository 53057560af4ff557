package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Archiver saves raw import payloads to disk so a run can be replayed or
// inspected after the fact.
type Archiver struct {
	ArchiveDir string
}

func NewArchiver(archiveDir string) *Archiver {
	return &Archiver{
		ArchiveDir: archiveDir,
	}
}

type archivedPayload struct {
	Filename   string    `json:"filename"`
	ReceivedAt time.Time `json:"received_at"`
	Document   string    `json:"document"`
}

// SavePayload writes the payload as a JSON snapshot with a UUID4 filename
// and returns the snapshot's filename.
func (a *Archiver) SavePayload(filename string, payload []byte) (string, error) {
	if err := a.ensureArchiveDir(); err != nil {
		return "", fmt.Errorf("failed to ensure archive directory: %w", err)
	}

	name := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(a.ArchiveDir, name)

	data, err := json.MarshalIndent(archivedPayload{
		Filename:   filename,
		ReceivedAt: time.Now(),
		Document:   string(payload),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write payload snapshot: %w", err)
	}

	return name, nil
}

// PruneOld removes archived snapshots older than the retention period and
// returns the number of files removed.
func (a *Archiver) PruneOld(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(a.ArchiveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read archive directory: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(a.ArchiveDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove snapshot %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// ensureArchiveDir creates the archive directory if it doesn't exist.
func (a *Archiver) ensureArchiveDir() error {
	if _, err := os.Stat(a.ArchiveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.ArchiveDir, 0755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	return nil
}
