package crawler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CrawlRecord is one line of the append-only page log.
type CrawlRecord struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PageLog appends crawl records to a JSON-lines file. One record per line,
// flushed on every append so a killed run loses at most the current line.
type PageLog struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// OpenPageLog opens (or creates) the log at path for appending.
func OpenPageLog(path string) (*PageLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open page log: %w", err)
	}
	return &PageLog{file: f, enc: json.NewEncoder(f)}, nil
}

// Append writes one record as a single JSON line.
func (l *PageLog) Append(rec CrawlRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.enc.Encode(rec); err != nil {
		return fmt.Errorf("append page log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *PageLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// ReadPageLog loads every well-formed record from a JSON-lines page log.
// Malformed lines are skipped so a partially written tail cannot poison
// downstream consumers.
func ReadPageLog(path string) ([]CrawlRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page log: %w", err)
	}
	defer f.Close()

	var records []CrawlRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec CrawlRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan page log: %w", err)
	}
	return records, nil
}
