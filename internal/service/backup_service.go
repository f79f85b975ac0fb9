package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"bytebabies/internal/docstore"
	"bytebabies/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the export file layout
type BackupData struct {
	Version     string                       `json:"version"`
	ExportedAt  time.Time                    `json:"exported_at"`
	Backend     string                       `json:"backend"`
	Collections map[string][]DocumentBackup `json:"collections"`
}

// DocumentBackup is one exported document
type DocumentBackup struct {
	ID     string          `json:"id"`
	Fields docstore.Fields `json:"fields"`
}

// BackupService exports and restores every collection of a document store
type BackupService struct {
	store       docstore.Store
	backend     string
	collections []string
}

// NewBackupService creates a backup service over the known collections
func NewBackupService(store docstore.Store, backend string) *BackupService {
	return &BackupService{store: store, backend: backend, collections: repository.Collections}
}

// Export writes a backup to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes the backup as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:     BackupVersion,
		ExportedAt:  time.Now().UTC(),
		Backend:     s.backend,
		Collections: make(map[string][]DocumentBackup, len(s.collections)),
	}

	for _, name := range s.collections {
		docs, err := s.store.List(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
		exported := make([]DocumentBackup, 0, len(docs))
		for _, doc := range docs {
			exported = append(exported, DocumentBackup{ID: doc.ID, Fields: doc.Fields})
		}
		backup.Collections[name] = exported
		log.Printf("Exported %d documents from %s", len(exported), name)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import restores a backup file. With clear set, each collection in the file is
// emptied before its documents are written.
func (s *BackupService) Import(ctx context.Context, inputPath string, clear bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file, clear)
}

// ImportFromReader restores a backup read from r
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clear bool) error {
	log.Println("Starting database import...")

	var backup BackupData
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	log.Printf("Backup version: %s, backend: %s, exported at: %s", backup.Version, backup.Backend, backup.ExportedAt)

	for _, name := range s.collections {
		docs, ok := backup.Collections[name]
		if !ok {
			continue
		}
		if clear {
			if err := s.clearCollection(ctx, name); err != nil {
				return err
			}
		}
		for _, doc := range docs {
			if err := s.store.Set(ctx, name, doc.ID, doc.Fields); err != nil {
				return fmt.Errorf("failed to import %s/%s: %w", name, doc.ID, err)
			}
		}
		log.Printf("Imported %d documents into %s", len(docs), name)
	}

	for name := range backup.Collections {
		if !s.known(name) {
			log.Printf("Warning: skipping unknown collection %s", name)
		}
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) clearCollection(ctx context.Context, name string) error {
	existing, err := s.store.List(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", name, err)
	}
	for _, doc := range existing {
		if err := s.store.Delete(ctx, name, doc.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	return nil
}

func (s *BackupService) known(name string) bool {
	for _, c := range s.collections {
		if c == name {
			return true
		}
	}
	return false
}
