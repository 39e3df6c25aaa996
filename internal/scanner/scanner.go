// Package scanner discovers content files on disk and populates the file
// index consumed by the title cache.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/index"
)

// Config holds scanner configuration
type Config struct {
	ContentDir     string
	HTMLExtensions []string
	TextExtensions []string
}

// ScanResult holds the result of a content scan
type ScanResult struct {
	TotalFiles int
	Skipped    int
	Duration   time.Duration
}

// Scanner walks the content tree and builds a file index
type Scanner struct {
	config *Config
	logger *zap.Logger
}

// New creates a new Scanner
func New(cfg *Config, logger *zap.Logger) *Scanner {
	return &Scanner{config: cfg, logger: logger}
}

// Scan walks the content directory and returns the populated index plus
// scan statistics. Hidden files and directories (dot-prefixed) are skipped.
func (s *Scanner) Scan() (*index.Index, *ScanResult, error) {
	start := time.Now()

	root, err := filepath.Abs(s.config.ContentDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve content dir: %w", err)
	}

	idx := index.New(s.config.HTMLExtensions, s.config.TextExtensions)
	result := &ScanResult{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			result.Skipped++
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if !idx.Recognized(ext) {
			result.Skipped++
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		category := ""
		if slash := strings.LastIndex(rel, "/"); slash >= 0 {
			category = rel[:slash]
		}

		idx.Add(domain.FileRecord{
			ID:        rel,
			Path:      path,
			Extension: strings.ToLower(ext),
			Category:  category,
			Basename:  strings.TrimSuffix(name, filepath.Ext(name)),
		})
		result.TotalFiles++
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan content dir %s: %w", root, err)
	}

	result.Duration = time.Since(start)

	s.logger.Info("content scan completed",
		zap.String("content_dir", root),
		zap.Int("files", result.TotalFiles),
		zap.Int("skipped", result.Skipped),
		zap.Duration("duration", result.Duration))

	return idx, result, nil
}
