package kv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// BackupService copies the cache database file on a fixed interval and
// prunes copies older than the retention window. The cache is small, so
// a plain file copy is enough; losing a backup only costs re-seeding.
type BackupService struct {
	dbPath    string
	dir       string
	interval  time.Duration
	retention int
	logger    *zerolog.Logger
}

// NewBackupService constructs a backup service for the database file.
func NewBackupService(dbPath, dir string, interval time.Duration, retentionDays int, logger *zerolog.Logger) *BackupService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BackupService{
		dbPath:    dbPath,
		dir:       dir,
		interval:  interval,
		retention: retentionDays,
		logger:    logger,
	}
}

// Start runs the backup loop until ctx ends. The first backup runs
// immediately.
func (s *BackupService) Start(ctx context.Context) {
	s.logger.Info().Str("dir", s.dir).Dur("interval", s.interval).Msg("cache backup service started")

	if err := s.Perform(); err != nil {
		s.logger.Error().Err(err).Msg("initial backup failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Perform(); err != nil {
				s.logger.Error().Err(err).Msg("scheduled backup failed")
			}
			s.CleanupOld()
		}
	}
}

// Perform writes one timestamped copy of the database file.
func (s *BackupService) Perform() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}

	name := fmt.Sprintf("jiscare_%s.db", time.Now().Format("20060102_150405"))
	target := filepath.Join(s.dir, name)

	source, err := os.Open(s.dbPath)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(target)
	if err != nil {
		return err
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return err
	}

	s.logger.Info().Str("path", target).Msg("cache backup written")
	return nil
}

// CleanupOld removes backups older than the retention window.
func (s *BackupService) CleanupOld() {
	if s.retention <= 0 {
		return
	}

	files, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error().Err(err).Msg("backup directory not readable for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.retention)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", file.Name()).Msg("deleting old backup")
			os.Remove(filepath.Join(s.dir, file.Name()))
		}
	}
}
