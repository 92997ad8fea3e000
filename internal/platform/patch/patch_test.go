package patch

import (
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
)

type record struct {
	Name  string
	Size  int
	Note  *string
	Count int
}

var (
	recordName = Attr[record, string]{Key: "name", Ref: func(r *record) *string { return &r.Name }}
	recordSize = Attr[record, int]{Key: "size", Ref: func(r *record) *int { return &r.Size }}
	recordNote = OptAttr[record, string]{Key: "note", Ref: func(r *record) **string { return &r.Note }}
)

func TestApply_OnlyTouchedAttributesChange(t *testing.T) {
	t.Parallel()

	note := "keep me"
	existing := record{Name: "old", Size: 4, Note: &note, Count: 9}

	got := New(recordName.Set("new")).Apply(existing)
	if got.Name != "new" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
	if got.Size != 4 || got.Count != 9 || got.Note == nil || *got.Note != "keep me" {
		t.Fatalf("untouched attributes changed: %+v", got)
	}
	if existing.Name != "old" {
		t.Fatalf("apply mutated input: %+v", existing)
	}
}

func TestApply_EmptyPatchIsIdentity(t *testing.T) {
	t.Parallel()

	existing := record{Name: "same", Size: 2}
	p := New[record]()
	if !p.IsEmpty() {
		t.Fatalf("expected empty patch")
	}
	if got := p.Apply(existing); got != existing {
		t.Fatalf("empty patch changed record: %+v", got)
	}
}

func TestOptAttr_ClearAndSet(t *testing.T) {
	t.Parallel()

	note := "x"
	cleared := New(recordNote.Clear()).Apply(record{Note: &note})
	if cleared.Note != nil {
		t.Fatalf("expected cleared note, got %q", *cleared.Note)
	}

	set := New(recordNote.Set("y")).Apply(record{})
	if set.Note == nil || *set.Note != "y" {
		t.Fatalf("expected note y, got %+v", set.Note)
	}
}

func TestWith_LastChangeToKeyWins(t *testing.T) {
	t.Parallel()

	base := New(recordName.Set("first"), recordSize.Set(1))
	next := base.With(recordName.Set("second"))

	if keys := next.Keys(); len(keys) != 2 || keys[0] != "name" || keys[1] != "size" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if got := next.Apply(record{}); got.Name != "second" || got.Size != 1 {
		t.Fatalf("unexpected merge result: %+v", got)
	}
	if got := base.Apply(record{}); got.Name != "first" {
		t.Fatalf("with mutated the receiver: %+v", got)
	}
}

func TestEntries_ReportClearsSeparately(t *testing.T) {
	t.Parallel()

	p := New(recordSize.Set(3), recordNote.Clear())
	entries := p.Entries()
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}
	if entries[0].Key != "size" || entries[0].Value != 3 || entries[0].Cleared {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Key != "note" || !entries[1].Cleared {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestField_DecodeTracksPresence(t *testing.T) {
	t.Parallel()

	type request struct {
		Name Field[string] `json:"name"`
		Size Field[int]    `json:"size"`
		Note Field[string] `json:"note"`
	}

	var req request
	if err := sonic.Unmarshal([]byte(`{"name":"osu","note":null}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if v, ok := req.Name.Get(); !ok || v != "osu" {
		t.Fatalf("unexpected name field: %+v", req.Name)
	}
	if !req.Size.IsAbsent() {
		t.Fatalf("expected size absent")
	}
	if !req.Note.IsNull() {
		t.Fatalf("expected note null")
	}
}

func TestAssign_RejectsNullOnRequiredAttribute(t *testing.T) {
	t.Parallel()

	p, err := Assign(New[record](), recordName, Null[string]())
	if !errors.Is(err, ErrNotNullable) {
		t.Fatalf("expected ErrNotNullable, got %v", err)
	}
	if !p.IsEmpty() {
		t.Fatalf("expected no change on error")
	}

	p, err = Assign(p, recordSize, Field[int]{})
	if err != nil || !p.IsEmpty() {
		t.Fatalf("absent field should be skipped: err=%v keys=%v", err, p.Keys())
	}

	p, err = Assign(p, recordSize, Value(8))
	if err != nil || !p.Has("size") {
		t.Fatalf("expected size change: err=%v keys=%v", err, p.Keys())
	}
}

func TestAssignOpt_NullClears(t *testing.T) {
	t.Parallel()

	p := AssignOpt(New[record](), recordNote, Null[string]())
	entries := p.Entries()
	if len(entries) != 1 || !entries[0].Cleared {
		t.Fatalf("expected clear entry, got %+v", entries)
	}
}
