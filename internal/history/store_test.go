package history

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

type memCache struct {
	mu          sync.Mutex
	data        map[string]map[string][]byte
	gets, hits  int
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, identity, field string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[identity][field]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, identity, field string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data[identity] == nil {
		c.data[identity] = map[string][]byte{}
	}
	c.data[identity][field] = value
	return nil
}

func (c *memCache) Invalidate(_ context.Context, identity string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, identity)
	c.invalidated++
	return nil
}

var jakarta = time.FixedZone("WIB", 7*3600)

func newTestStore(t *testing.T, cache Cache) (*Store, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC)
	s, err := NewStore(Options{
		Dir:               t.TempDir(),
		MaxItems:          100,
		DescriptionMaxLen: 200,
		Location:          jakarta,
		Cache:             cache,
		Now:               func() time.Time { return clock },
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, &clock
}

func sample(desc string, qult float64) Record {
	return Record{
		Description:    desc,
		FoundationType: "strip",
		FailureType:    "general",
		Cohesion:       0.2,
		FrictionAngle:  30,
		SoilUnitWeight: 0.0018,
		Width:          1.5,
		Depth:          1.5,
		SafetyFactor:   3,
		Qult:           qult,
		Qall:           qult / 3,
	}
}

func TestAppendAndListNewestFirst(t *testing.T) {
	s, clock := newTestStore(t, nil)
	ctx := context.Background()

	for i, q := range []float64{10, 20, 30} {
		row, err := s.Append(ctx, "andi", sample("case", q))
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if row != i+2 {
			t.Fatalf("row = %d, want %d", row, i+2)
		}
		*clock = clock.Add(time.Minute)
	}

	entries, err := s.List(ctx, "andi", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Qult != 30 || entries[0].RowIndex != 4 {
		t.Fatalf("newest entry = %+v", entries[0])
	}
	if entries[2].Qult != 10 || entries[2].RowIndex != 2 {
		t.Fatalf("oldest entry = %+v", entries[2])
	}
	if entries[0].FrictionAngle != 30 || entries[0].SoilUnitWeight != 0.0018 {
		t.Fatalf("numeric round trip lost precision: %+v", entries[0].Record)
	}
	want := time.Date(2024, 3, 1, 8, 32, 0, 0, jakarta)
	if !entries[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", entries[0].Timestamp, want)
	}
}

func TestListLimitClamp(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.opts.MaxItems = 3
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Append(ctx, "u", sample("", float64(i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	for _, tc := range []struct{ limit, want int }{{2, 2}, {0, 3}, {-1, 3}, {50, 3}} {
		entries, err := s.List(ctx, "u", tc.limit)
		if err != nil {
			t.Fatalf("List(%d): %v", tc.limit, err)
		}
		if len(entries) != tc.want {
			t.Fatalf("List(%d) = %d entries, want %d", tc.limit, len(entries), tc.want)
		}
	}
}

func TestListEmptyWorkbook(t *testing.T) {
	s, _ := newTestStore(t, nil)
	entries, err := s.List(context.Background(), "fresh", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	n, err := s.Count(context.Background(), "fresh")
	if err != nil || n != 0 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestDescriptionDefaultAndTruncation(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	if _, err := s.Append(ctx, "u", sample("   ", 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	long := strings.Repeat("é", 250)
	if _, err := s.Append(ctx, "u", sample(long, 2)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, _ := s.List(ctx, "u", 0)
	if got := []rune(entries[0].Description); len(got) != 200 {
		t.Fatalf("truncated description has %d runes, want 200", len(got))
	}
	if entries[1].Description != "Calculation 2024-03-01 08:30" {
		t.Fatalf("default description = %q", entries[1].Description)
	}
}

func TestDeleteBounds(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Append(ctx, "u", sample("", float64(i+1)))
	}

	for _, row := range []int{0, 1, 5} {
		if err := s.Delete(ctx, "u", row); !errors.Is(err, ErrInvalidRow) {
			t.Fatalf("Delete(%d) = %v, want ErrInvalidRow", row, err)
		}
	}
	if err := s.Delete(ctx, "u", 3); err != nil {
		t.Fatalf("Delete(3): %v", err)
	}
	entries, _ := s.List(ctx, "u", 0)
	if len(entries) != 2 {
		t.Fatalf("got %d entries after delete", len(entries))
	}
	if entries[0].Qult != 3 || entries[1].Qult != 1 {
		t.Fatalf("wrong rows left: %v, %v", entries[0].Qult, entries[1].Qult)
	}
	if entries[0].RowIndex != 3 {
		t.Fatalf("row index not renumbered: %d", entries[0].RowIndex)
	}
}

func TestEmptyIdentityRejected(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	if _, err := s.Append(ctx, "", sample("", 1)); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.List(ctx, "", 0); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("List: %v", err)
	}
	if err := s.Delete(ctx, "", 2); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPathSanitisesIdentity(t *testing.T) {
	s, _ := newTestStore(t, nil)
	p, err := s.Path("../../etc/passwd")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if !strings.HasPrefix(p, s.opts.Dir) || strings.Contains(strings.TrimPrefix(p, s.opts.Dir), "/..") {
		t.Fatalf("path escapes dir: %s", p)
	}
	p, _ = s.Path("budi@example.com")
	if !strings.HasSuffix(p, "Terzaghi Calculator - budi@example.com.xlsx") {
		t.Fatalf("unexpected path %s", p)
	}
}

func TestIdentitiesAreIsolated(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	s.Append(ctx, "a", sample("", 1))
	s.Append(ctx, "b", sample("", 2))
	s.Append(ctx, "b", sample("", 3))

	if n, _ := s.Count(ctx, "a"); n != 1 {
		t.Fatalf("a has %d rows", n)
	}
	if n, _ := s.Count(ctx, "b"); n != 2 {
		t.Fatalf("b has %d rows", n)
	}
}

func TestHeaderRepair(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	s.Append(ctx, "u", sample("keep", 7))

	path, _ := s.Path("u")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	f.SetCellValue(SheetName, "A1", "When")
	f.SetCellValue(SheetName, "C1", "Type")
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f.Close()

	entries, err := s.List(ctx, "u", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Description != "keep" {
		t.Fatalf("data row lost during repair: %+v", entries)
	}

	f, _ = excelize.OpenFile(path)
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if !headerMatches(rows[0]) {
		t.Fatalf("header not repaired: %v", rows[0])
	}
}

func TestExtraHeaderColumnKept(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	s.Append(ctx, "u", sample("keep", 7))

	path, _ := s.Path("u")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	f.SetCellValue(SheetName, "P1", "Notes")
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f.Close()
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.List(ctx, "u", 0); err != nil {
			t.Fatalf("List: %v", err)
		}
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatal("read-only List rewrote a workbook with an extra header column")
	}

	f, _ = excelize.OpenFile(path)
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if len(rows[0]) != len(Headers)+1 || rows[0][len(Headers)] != "Notes" || !headerMatches(rows[0]) {
		t.Fatalf("header = %v", rows[0])
	}
	if headerMatches(rows[0][:len(Headers)-1]) {
		t.Fatal("short header accepted")
	}
}

func TestMissingSheetRecreated(t *testing.T) {
	s, _ := newTestStore(t, nil)
	path, _ := s.Path("u")
	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	row, err := s.Append(context.Background(), "u", sample("", 1))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if row != 2 {
		t.Fatalf("row = %d, want 2", row)
	}
}

func TestCacheHitAndInvalidation(t *testing.T) {
	cache := newMemCache()
	s, _ := newTestStore(t, cache)
	ctx := context.Background()
	s.Append(ctx, "u", sample("", 1))

	first, _ := s.List(ctx, "u", 10)
	second, _ := s.List(ctx, "u", 10)
	if cache.hits != 1 {
		t.Fatalf("hits = %d, want 1", cache.hits)
	}
	if len(first) != len(second) || first[0].Qult != second[0].Qult {
		t.Fatalf("cached list differs: %+v vs %+v", first, second)
	}

	s.Append(ctx, "u", sample("", 2))
	third, _ := s.List(ctx, "u", 10)
	if len(third) != 2 {
		t.Fatalf("stale cache after append: %d entries", len(third))
	}
	if cache.invalidated != 2 {
		t.Fatalf("invalidated = %d, want 2", cache.invalidated)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Append(ctx, "u", sample("", float64(i))); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if n, _ := s.Count(ctx, "u"); n != 8 {
		t.Fatalf("Count = %d, want 8", n)
	}
}

func TestWriteToProducesWorkbook(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	s.Append(ctx, "u", sample("x", 1))

	var buf bytes.Buffer
	if err := s.WriteTo(ctx, "u", &buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestNoTempFileLeftBehind(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.Append(context.Background(), "u", sample("", 1))
	files, _ := os.ReadDir(s.opts.Dir)
	if len(files) != 1 {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name()
		}
		t.Fatalf("unexpected files: %v", names)
	}
}

func TestRecordFromCalculation(t *testing.T) {
	in := bearing.Input{
		Shape:          bearing.Square,
		FailureMode:    bearing.Local,
		Cohesion:       bearing.Float(0.3),
		FrictionAngle:  bearing.Float(20),
		SoilUnitWeight: bearing.Float(0.0017),
		WidthM:         bearing.Float(2),
		DepthM:         bearing.Float(1),
		SafetyFactor:   bearing.Float(3),
	}
	rec := RecordFromCalculation(in, bearing.Result{Qult: 9, Qall: 3}, "d")
	if rec.FoundationType != "square" || rec.FailureType != "local" {
		t.Fatalf("types = %q/%q", rec.FoundationType, rec.FailureType)
	}
	if rec.GwtDepth != 0 || rec.SaturatedUnitWeight != 0 || rec.WaterUnitWeight != 0 {
		t.Fatalf("absent water values should be 0: %+v", rec)
	}
	if rec.Qult != 9 || rec.Qall != 3 || rec.Width != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}
}
