package memory

import (
	"errors"
	"testing"

	"opsdesk/pkg/domain"
)

func newStaffCollection() *Collection[domain.StaffMember] {
	return NewCollection(domain.EntityStaff, func(s domain.StaffMember) string { return s.ID }, cloneStaff)
}

func TestCollectionKeepsInsertionOrder(t *testing.T) {
	c := newStaffCollection()
	for _, id := range []string{"c", "a", "b"} {
		if err := c.Insert(domain.StaffMember{ID: id}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	got := c.List()
	if len(got) != 3 || got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Fatalf("unexpected order %+v", got)
	}
	if !c.Delete("a") || c.Delete("a") {
		t.Fatalf("expected delete to succeed once")
	}
	got = c.List()
	if len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("unexpected order after delete %+v", got)
	}
}

func TestCollectionInsertRejectsDuplicates(t *testing.T) {
	c := newStaffCollection()
	if err := c.Insert(domain.StaffMember{ID: "s1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var invalid domain.ErrInvalidEntity
	if err := c.Insert(domain.StaffMember{ID: "s1"}); !errors.As(err, &invalid) {
		t.Fatalf("expected duplicate to fail, got %v", err)
	}
	if err := c.Insert(domain.StaffMember{}); !errors.As(err, &invalid) {
		t.Fatalf("expected empty id to fail, got %v", err)
	}
}

func TestCollectionApplyLeavesRecordOnError(t *testing.T) {
	c := newStaffCollection()
	_ = c.Insert(domain.StaffMember{ID: "s1", Name: "Ana"})
	boom := errors.New("boom")
	_, err := c.Apply("s1", func(s *domain.StaffMember) error {
		s.Name = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutate error, got %v", err)
	}
	got, _ := c.Get("s1")
	if got.Name != "Ana" {
		t.Fatalf("record modified by failed apply: %+v", got)
	}

	if _, err := c.Apply("s1", func(s *domain.StaffMember) error { s.ID = "other"; return nil }); err == nil {
		t.Fatalf("expected id change to be rejected")
	}
	var nf domain.ErrNotFound
	if _, err := c.Apply("missing", func(*domain.StaffMember) error { return nil }); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	updated, err := c.Apply("s1", func(s *domain.StaffMember) error { s.Name = "Bea"; return nil })
	if err != nil || updated.Name != "Bea" {
		t.Fatalf("expected update, got %+v %v", updated, err)
	}
}

func TestCollectionReadsAreCopies(t *testing.T) {
	c := NewCollection(domain.EntityTask, func(t domain.HousekeepingTask) string { return t.ID }, cloneTask)
	_ = c.Insert(domain.HousekeepingTask{ID: "t1", Checklist: []domain.ChecklistItem{{Label: "beds"}}})
	got, _ := c.Get("t1")
	got.Checklist[0].Completed = true
	again, _ := c.Get("t1")
	if again.Checklist[0].Completed {
		t.Fatalf("checklist shared with caller")
	}
}

func TestCollectionReplaceDropsDuplicates(t *testing.T) {
	c := newStaffCollection()
	c.Replace([]domain.StaffMember{{ID: "a", Name: "first"}, {ID: "b"}, {ID: "a", Name: "second"}})
	if c.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", c.Len())
	}
	got, _ := c.Get("a")
	if got.Name != "first" {
		t.Fatalf("expected first occurrence kept, got %q", got.Name)
	}
}
