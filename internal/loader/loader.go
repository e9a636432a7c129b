// Package loader reads intent corpora from JSON and JSONL files. Export
// pipelines produce messy data, so parsing is deliberately forgiving: a
// whole-file JSON array is tried first, then line-by-line JSONL where
// blank lines and comments are skipped, broken lines are dropped, and
// lines holding several concatenated objects are split and recovered.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// defaultMaxRecords caps a single load so a runaway export cannot exhaust
// memory.
const defaultMaxRecords = 1_000_000

// maxLineBytes sizes the line scanner. Some records carry whole markdown
// documents in their answers.
const maxLineBytes = 16 << 20

// Options tunes a load.
type Options struct {
	// MaxRecords caps how many records are read; 0 means the default cap.
	MaxRecords int
	// FilterExpired drops records whose expire_at lies in the past.
	FilterExpired bool
	// Now anchors expiry checks; zero means time.Now.
	Now time.Time
}

// Stats describes what happened during a load.
type Stats struct {
	SourceFile      string       `json:"source_file,omitempty"`
	TotalLines      int          `json:"total_lines_processed"`
	Success         int          `json:"success"`
	FixedExtraData  int          `json:"fixed_extra_data"`
	SkippedEmpty    int          `json:"skipped_empty"`
	SkippedInvalid  int          `json:"skipped_invalid"`
	FilteredExpired int          `json:"filtered_expired"`
	FinalCount      int          `json:"final_count"`
	Versions        VersionStats `json:"version_statistics"`
}

// LoadFile reads and decodes an intent corpus from disk.
func LoadFile(logger *slog.Logger, path string, opts Options) ([]domain.Intent, *Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus: %w", err)
	}
	logger.Info("loading corpus", "path", path, "bytes", len(data))

	intents, stats, err := Load(logger, data, opts)
	if stats != nil {
		stats.SourceFile = path
	}
	return intents, stats, err
}

// Load decodes an intent corpus from raw bytes.
func Load(logger *slog.Logger, data []byte, opts Options) ([]domain.Intent, *Stats, error) {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = defaultMaxRecords
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	stats := &Stats{}
	records, ok := loadWholeFile(data, opts.MaxRecords, stats)
	if !ok {
		records = loadLines(logger, data, opts.MaxRecords, stats)
	}
	if len(records) == 0 {
		return nil, stats, fmt.Errorf("no decodable records: %d lines, %d invalid", stats.TotalLines, stats.SkippedInvalid)
	}

	intents := make([]domain.Intent, 0, len(records))
	for _, raw := range records {
		intents = append(intents, domain.DecodeIntent(raw))
	}

	stats.Versions = versionStatistics(intents, opts.Now)
	if opts.FilterExpired {
		intents, stats.FilteredExpired = filterExpired(intents, opts.Now)
	}
	stats.FinalCount = len(intents)

	logger.Info("corpus loaded",
		"records", stats.FinalCount,
		"fixed", stats.FixedExtraData,
		"skipped_invalid", stats.SkippedInvalid,
		"filtered_expired", stats.FilteredExpired)

	return intents, stats, nil
}

// loadWholeFile handles the single-document shapes: a JSON array, an object
// with an "intents" key, or one bare record.
func loadWholeFile(data []byte, max int, stats *Stats) ([]map[string]any, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, false
		}
		if len(records) > max {
			records = records[:max]
		}
		stats.Success = len(records)
		return records, true
	case '{':
		// A single object is either a wrapper or one record; either way
		// it must parse as one document, otherwise it is JSONL.
		var doc map[string]any
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, false
		}
		if wrapped, ok := doc["intents"].([]any); ok {
			var records []map[string]any
			for _, item := range wrapped {
				if rec, ok := item.(map[string]any); ok {
					records = append(records, rec)
				}
				if len(records) == max {
					break
				}
			}
			stats.Success = len(records)
			return records, len(records) > 0
		}
		stats.Success = 1
		return []map[string]any{doc}, true
	}
	return nil, false
}

// loadLines is the JSONL path with per-line recovery.
func loadLines(logger *slog.Logger, data []byte, max int, stats *Stats) []map[string]any {
	var records []map[string]any

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() && len(records) < max {
		lineNum++
		stats.TotalLines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			stats.SkippedEmpty++
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err == nil {
			records = append(records, record)
			stats.Success++
			continue
		}

		// Recovery: the line may hold several objects glued together.
		recovered := decodeConcatenated(line, max-len(records))
		if len(recovered) == 0 {
			if stats.SkippedInvalid < 10 {
				logger.Warn("skipping undecodable line", "line", lineNum)
			}
			stats.SkippedInvalid++
			continue
		}
		records = append(records, recovered...)
		stats.FixedExtraData += len(recovered)
	}
	return records
}

// decodeConcatenated pulls consecutive JSON objects off a single line.
func decodeConcatenated(line string, max int) []map[string]any {
	var out []map[string]any
	dec := json.NewDecoder(strings.NewReader(line))
	for len(out) < max {
		var record map[string]any
		if err := dec.Decode(&record); err != nil {
			break
		}
		if record != nil {
			out = append(out, record)
		}
	}
	return out
}
