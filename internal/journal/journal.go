// Package journal appends assistant decisions to hourly zstd-compressed JSONL
// files so a session can be audited or replayed later.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const hourLayout = "2006-01-02-15"

type Entry struct {
	ID      string          `json:"id"`
	At      time.Time       `json:"at"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Writer rotates to a new file whenever the UTC hour changes.
type Writer struct {
	baseDir string
	prefix  string
	now     func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewWriter(baseDir, prefix string) *Writer {
	return &Writer{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Record wraps payload in an Entry and appends it.
func (w *Writer) Record(kind string, payload any) (Entry, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding %s payload: %w", kind, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	at := w.now().UTC()
	entry := Entry{
		ID:      uuid.NewString(),
		At:      at,
		Kind:    kind,
		Payload: raw,
	}

	hour := at.Format(hourLayout)
	if hour != w.curHour || w.w == nil {
		if err := w.rotateLocked(hour); err != nil {
			return Entry{}, err
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, err
	}
	if _, err := w.w.Write(b); err != nil {
		return Entry{}, err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return Entry{}, err
	}
	if err := w.w.Flush(); err != nil {
		return Entry{}, err
	}
	if err := w.enc.Flush(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err1
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}

// ReadFile decodes every entry in one journal file. Files reopened in
// append mode hold several zstd frames; the decoder reads them in sequence.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []Entry
	for sc.Scan() {
		line := sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		out = append(out, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// Files lists the journal files for prefix in dir, oldest first.
func Files(dir, prefix string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".jsonl.zst") {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
