package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Entry is one product row of a catalogue feed.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
}

// Loader reads a catalogue feed from a source location.
type Loader interface {
	// Load reads a gzipped JSON-lines product feed and returns its entries.
	Load(ctx context.Context, source string) ([]Entry, error)
}

// fileLoader implements Loader for reading gzipped catalogue feeds from
// the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped JSON-lines catalogue feed from disk.
func (l *fileLoader) Load(ctx context.Context, source string) ([]Entry, error) {
	l.logger.Info().Str("file", source).Msg("loading catalogue feed")

	file, err := os.Open(source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to open catalogue feed")
		return nil, fmt.Errorf("failed to open catalogue feed %s: %w", source, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	entries, err := decodeEntries(ctx, gzipReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalogue feed %s: %w", source, err)
	}

	l.logger.Info().Str("file", source).Int("entries", len(entries)).Msg("catalogue feed loaded")

	return entries, nil
}

// decodeEntries reads a JSON-lines stream, one product per line. Blank
// lines are skipped.
func decodeEntries(ctx context.Context, r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("line %d: entry has no name", line)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return entries, nil
}
