package core

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bethropolis/gapedit/internal/types"
)

func lineLengths(d *Document) []int {
	out := make([]int, d.LineCount())
	for i := range out {
		out[i] = d.LineLength(i)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDocument_HelloScenario(t *testing.T) {
	d := NewDocument(4, 0)
	d.InsertString(0, "hello")
	if d.Len() != 5 || d.LineCount() != 1 || d.LineLength(0) != 6 {
		t.Fatalf("after 'hello': len=%d lines=%v", d.Len(), lineLengths(d))
	}

	d.InsertChar(5, '\n')
	if got := lineLengths(d); !equalInts(got, []int{6, 1}) {
		t.Fatalf("after newline: lines=%v, want [6 1]", got)
	}

	if s := d.DeleteRange(5, 1); s != "\n" {
		t.Fatalf("DeleteRange returned %q", s)
	}
	if got := lineLengths(d); !equalInts(got, []int{6}) {
		t.Fatalf("after deleting newline: lines=%v, want [6]", got)
	}
}

func TestDocument_DamageFolding(t *testing.T) {
	d := NewDocumentString("ab\ncd")
	if damage, _ := d.QueryDamageAndClear(); damage != DamageNone {
		t.Fatalf("fresh document has damage %v", damage)
	}

	d.InsertChar(1, 'x')
	d.SetPoint(2)
	damage, pos := d.QueryDamageAndClear()
	if damage != DamageLine || pos != (types.Position{Line: 0, Col: 2}) {
		t.Fatalf("got %v at %+v, want line damage at 0:2", damage, pos)
	}
	if damage, _ := d.QueryDamageAndClear(); damage != DamageNone {
		t.Fatalf("damage not cleared: %v", damage)
	}

	d.InsertChar(0, '\n')
	d.DeleteChar(0)
	d.InsertChar(0, 'y')
	if damage, _ := d.QueryDamageAndClear(); damage != DamageFull {
		t.Fatalf("full damage should dominate, got %v", damage)
	}

	d.DeleteChar(0)
	d.ForceDamage(DamageLine)
	if damage, _ := d.QueryDamageAndClear(); damage != DamageLine {
		t.Fatalf("got %v, want line", damage)
	}
}

func TestDocument_FetchLine(t *testing.T) {
	d := NewDocumentString("first\n\nlast")
	tests := []struct {
		line int
		want string
	}{
		{0, "first"},
		{1, ""},
		{2, "last"},
	}
	var buf []rune
	for _, tt := range tests {
		buf = d.FetchLine(tt.line, buf[:0])
		if string(buf) != tt.want {
			t.Errorf("FetchLine(%d) = %q, want %q", tt.line, string(buf), tt.want)
		}
	}
	if d.LineEnd(0) != 5 || d.LineEnd(2) != d.Len() {
		t.Errorf("LineEnd: got %d and %d", d.LineEnd(0), d.LineEnd(2))
	}
}

func TestDocument_InsertRange(t *testing.T) {
	src := NewDocumentString("one\ntwo\nthree")
	d := NewDocumentString("[]")
	d.InsertRange(1, src, 4, 4)
	if d.String() != "[two\n]" || d.LineCount() != 2 {
		t.Fatalf("got %q with %d lines", d.String(), d.LineCount())
	}
}

func TestDocument_LoadKeepsPartialContent(t *testing.T) {
	boom := errors.New("boom")
	d := NewDocumentString("old text")
	d.SetPoint(3)

	n, err := d.Load(io.MultiReader(strings.NewReader("ab\ncd"), iotest.ErrReader(boom)))
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if n != 5 || d.String() != "ab\ncd" || d.Point() != 0 {
		t.Fatalf("got n=%d text=%q point=%d", n, d.String(), d.Point())
	}
	if got := lineLengths(d); !equalInts(got, []int{3, 3}) {
		t.Fatalf("line map not rebuilt: %v", got)
	}
	if damage, _ := d.QueryDamageAndClear(); damage != DamageFull {
		t.Fatalf("load should fully damage, got %v", damage)
	}
}

func TestDocument_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	content := "héllo\nwörld\n"

	d := NewDocument(2, 3)
	d.InsertString(0, content)
	d.SetModified(true)
	if _, err := d.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if d.IsModified() || d.FilePath() != path {
		t.Fatalf("save should clear modified and record path")
	}
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != content {
		t.Fatalf("file holds %q (err %v)", raw, err)
	}

	loaded := NewDocument(1, 2)
	n, err := loaded.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != len([]rune(content)) || loaded.String() != content {
		t.Fatalf("loaded %d chars %q", n, loaded.String())
	}
	if got := lineLengths(loaded); !equalInts(got, []int{6, 6, 1}) {
		t.Fatalf("line lengths %v", got)
	}
}

func TestDocument_LoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")
	d := NewDocumentString("left over")
	if _, err := d.LoadFile(path); err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if d.Len() != 0 || d.FilePath() != path || d.LineCount() != 1 {
		t.Fatalf("expected empty document named %s", path)
	}
}

func TestDocument_SaveWithoutPath(t *testing.T) {
	d := NewDocumentString("x")
	if _, err := d.SaveFile(""); err == nil {
		t.Fatalf("expected an error without a file path")
	}
}

func TestDocument_StateRestore(t *testing.T) {
	d := NewDocumentString("abcdef")
	d.SetPoint(4)
	s := d.State()
	d.SetPoint(100)
	if d.Point() != 6 {
		t.Fatalf("SetPoint should clamp, got %d", d.Point())
	}
	s.Restore()
	if d.Point() != 4 {
		t.Fatalf("Restore: point %d, want 4", d.Point())
	}
}

func TestDocument_ChangeHook(t *testing.T) {
	d := NewDocument(8, 0)
	var edits []types.EditInfo
	d.SetChangeHook(func(e types.EditInfo) { edits = append(edits, e) })

	d.InsertString(0, "añb")
	d.DeleteChar(1)
	d.DeleteRange(0, 2)

	want := []types.EditInfo{
		{Offset: 0, Inserted: 3},
		{Offset: 1, Deleted: 1},
		{Offset: 0, Deleted: 2},
	}
	if len(edits) != len(want) {
		t.Fatalf("got %d edits, want %d", len(edits), len(want))
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Errorf("edit %d = %+v, want %+v", i, edits[i], want[i])
		}
	}
}
