package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/arenoe-studio/terzaghi-calculator/internal/metrics"
)

const (
	SheetName  = "Calculations"
	filePrefix = "Terzaghi Calculator - "
)

var (
	ErrNoIdentity = errors.New("history: no user identity")
	ErrInvalidRow = errors.New("history: invalid row index")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9@._-]+`)

type Options struct {
	Dir               string
	MaxItems          int
	DescriptionMaxLen int
	Location          *time.Location
	Cache             Cache
	CacheTTL          time.Duration
	Logger            *slog.Logger
	Now               func() time.Time
}

// Store keeps one workbook per identity under Dir.
type Store struct {
	opts Options
	log  *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("history: directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = 100
	}
	if opts.DescriptionMaxLen <= 0 {
		opts.DescriptionMaxLen = 200
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Store{opts: opts, log: log, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) MaxItems() int { return s.opts.MaxItems }

func (s *Store) lock(identity string) func() {
	s.mu.Lock()
	l, ok := s.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		s.locks[identity] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Path returns the workbook location for identity. The file may not exist yet.
func (s *Store) Path(identity string) (string, error) {
	if identity == "" {
		return "", ErrNoIdentity
	}
	name := unsafeChars.ReplaceAllString(identity, "_")
	return filepath.Join(s.opts.Dir, filePrefix+name+".xlsx"), nil
}

// Append writes rec as a new row stamped with the current time and returns
// its 1-based row index.
func (s *Store) Append(ctx context.Context, identity string, rec Record) (row int, err error) {
	defer func() { metrics.ObserveHistory("append", err) }()
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	path, err := s.Path(identity)
	if err != nil {
		return 0, err
	}
	unlock := s.lock(identity)
	defer unlock()

	f, err := s.open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("history: read rows: %w", err)
	}
	row = len(rows) + 1

	now := s.opts.Now().In(s.opts.Location)
	rec.Description = s.description(rec.Description, now)
	cell, _ := excelize.CoordinatesToCellName(1, row)
	values := rec.row(now)
	if err = f.SetSheetRow(SheetName, cell, &values); err != nil {
		return 0, fmt.Errorf("history: write row: %w", err)
	}
	if err = save(f, path); err != nil {
		return 0, err
	}
	s.invalidate(ctx, identity)
	s.log.Info("history row appended", "identity", identity, "row", row)
	return row, nil
}

// List returns up to limit rows, newest first. limit outside (0, MaxItems]
// is clamped to MaxItems.
func (s *Store) List(ctx context.Context, identity string, limit int) (entries []Entry, err error) {
	defer func() { metrics.ObserveHistory("list", err) }()
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(identity)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.opts.MaxItems {
		limit = s.opts.MaxItems
	}

	key := strconv.Itoa(limit)
	if s.opts.Cache != nil {
		if raw, ok, cerr := s.opts.Cache.Get(ctx, identity, key); cerr != nil {
			s.log.Warn("history cache read failed", "identity", identity, "err", cerr)
		} else if ok && json.Unmarshal(raw, &entries) == nil {
			metrics.ObserveCacheLookup(true)
			return entries, nil
		}
		metrics.ObserveCacheLookup(false)
	}

	// Held through the cache write so a concurrent Append cannot be masked.
	unlock := s.lock(identity)
	defer unlock()
	rows, err := s.readRows(path)
	if err != nil {
		return nil, err
	}

	n := len(rows) - 1
	if n > limit {
		n = limit
	}
	entries = make([]Entry, 0, max(n, 0))
	for i := len(rows) - 1; i >= 1 && len(entries) < n; i-- {
		entries = append(entries, parseEntry(i+1, rows[i]))
	}

	if s.opts.Cache != nil {
		if raw, merr := json.Marshal(entries); merr == nil {
			if cerr := s.opts.Cache.Set(ctx, identity, key, raw, s.opts.CacheTTL); cerr != nil {
				s.log.Warn("history cache write failed", "identity", identity, "err", cerr)
			}
		}
	}
	return entries, nil
}

// Delete removes the data row at 1-based index row. The header row and rows
// past the end are rejected with ErrInvalidRow.
func (s *Store) Delete(ctx context.Context, identity string, row int) (err error) {
	defer func() { metrics.ObserveHistory("delete", err) }()
	if err = ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(identity)
	if err != nil {
		return err
	}
	unlock := s.lock(identity)
	defer unlock()

	f, err := s.open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("history: read rows: %w", err)
	}
	if row < 2 || row > len(rows) {
		return fmt.Errorf("%w: %d (have %d rows)", ErrInvalidRow, row, len(rows))
	}
	if err = f.RemoveRow(SheetName, row); err != nil {
		return fmt.Errorf("history: remove row: %w", err)
	}
	if err = save(f, path); err != nil {
		return err
	}
	s.invalidate(ctx, identity)
	s.log.Info("history row deleted", "identity", identity, "row", row)
	return nil
}

// Count returns the number of data rows, excluding the header.
func (s *Store) Count(ctx context.Context, identity string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := s.Path(identity)
	if err != nil {
		return 0, err
	}
	unlock := s.lock(identity)
	defer unlock()
	rows, err := s.readRows(path)
	if err != nil {
		return 0, err
	}
	return max(len(rows)-1, 0), nil
}

// WriteTo streams the workbook for identity to w, creating it first if needed.
func (s *Store) WriteTo(ctx context.Context, identity string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(identity)
	if err != nil {
		return err
	}
	unlock := s.lock(identity)
	defer unlock()
	f, err := s.open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (s *Store) readRows(path string) ([][]string, error) {
	f, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("history: read rows: %w", err)
	}
	return rows, nil
}

// open loads the workbook at path, creating it with a styled header when it
// does not exist and rewriting the header row when it has drifted.
func (s *Store) open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f, err := newWorkbook()
		if err != nil {
			return nil, err
		}
		if err := save(f, path); err != nil {
			f.Close()
			return nil, err
		}
		s.log.Info("history workbook created", "path", path)
		return f, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	repaired, err := ensureSheet(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if repaired {
		if err := save(f, path); err != nil {
			f.Close()
			return nil, err
		}
		s.log.Warn("history header repaired", "path", path)
	}
	return f, nil
}

func (s *Store) description(desc string, now time.Time) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "Calculation " + now.Format("2006-01-02 15:04")
	}
	if utf8.RuneCountInString(desc) > s.opts.DescriptionMaxLen {
		return string([]rune(desc)[:s.opts.DescriptionMaxLen])
	}
	return desc
}

func (s *Store) invalidate(ctx context.Context, identity string) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Invalidate(ctx, identity); err != nil {
		s.log.Warn("history cache invalidation failed", "identity", identity, "err", err)
	}
}

func newWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("history: rename sheet: %w", err)
	}
	if err := writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// ensureSheet adds the Calculations sheet if missing and rewrites a header
// that does not match Headers. It reports whether anything changed.
func ensureSheet(f *excelize.File) (bool, error) {
	idx, err := f.GetSheetIndex(SheetName)
	if err != nil {
		return false, fmt.Errorf("history: sheet index: %w", err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return false, fmt.Errorf("history: add sheet: %w", err)
		}
		return true, writeHeader(f)
	}

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return false, fmt.Errorf("history: read header: %w", err)
	}
	if len(rows) > 0 && headerMatches(rows[0]) {
		return false, nil
	}
	if len(rows) == 0 {
		return true, writeHeader(f)
	}
	// A data row sits where the header belongs; keep it below a fresh header.
	if !looksLikeHeader(rows[0]) {
		if err := f.InsertRows(SheetName, 1, 1); err != nil {
			return false, fmt.Errorf("history: insert header row: %w", err)
		}
	}
	return true, writeHeader(f)
}

// headerMatches ignores columns past Headers so user-added notes survive.
func headerMatches(row []string) bool {
	if len(row) < len(Headers) {
		return false
	}
	for i, h := range Headers {
		if row[i] != h {
			return false
		}
	}
	return true
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return true
	}
	_, err := time.Parse(time.RFC3339, row[0])
	return err != nil
}

func writeHeader(f *excelize.File) error {
	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("history: write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(Headers))

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4285F4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("history: header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
		return fmt.Errorf("history: apply header style: %w", err)
	}

	numFmt := "#,##0.000"
	numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("history: number style: %w", err)
	}
	if err := f.SetColStyle(SheetName, "E:"+last, numStyle); err != nil {
		return fmt.Errorf("history: apply number style: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", last, 18); err != nil {
		return fmt.Errorf("history: column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 36); err != nil {
		return fmt.Errorf("history: column width: %w", err)
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// save writes f next to path and renames it into place. The temporary name
// keeps the .xlsx extension because SaveAs rejects anything else.
func save(f *excelize.File, path string) error {
	tmp := filepath.Join(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("history: save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("history: save: %w", err)
	}
	return nil
}
