package model

import (
	"reflect"
	"testing"
	"time"

	"lectern/internal/notesapi"
)

func TestCourseFromRecord(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rec := notesapi.CourseRecord{ID: 42, Name: "Algebra", Image: "http://img/algebra.png"}

	got := CourseFromRecord(rec, now)

	if got.ID != "42" {
		t.Fatalf("ID = %q, want \"42\"", got.ID)
	}
	if got.Name != "Algebra" || got.Image != "http://img/algebra.png" {
		t.Fatalf("got %#v, want name and image carried over", got)
	}
	if got.Subjects == nil || len(got.Subjects) != 0 {
		t.Fatalf("Subjects = %#v, want empty non-nil slice", got.Subjects)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestSubjectFromRecord(t *testing.T) {
	now := time.Now()
	rec := notesapi.SubjectRecord{ID: 7, Name: "Limits", CourseID: 42, Image: "http://img/limits.png"}

	got := SubjectFromRecord(rec, now)

	if got.ID != "7" || got.CourseID != "42" {
		t.Fatalf("ids = %q/%q, want \"7\"/\"42\"", got.ID, got.CourseID)
	}
	if got.Contents == nil || len(got.Contents) != 0 {
		t.Fatalf("Contents = %#v, want empty non-nil slice", got.Contents)
	}
}

func TestContentFromRecord(t *testing.T) {
	now := time.Now()
	rec := notesapi.ContentRecord{
		ID:        3,
		Title:     "Intro",
		Text:      "<p>hello</p>",
		SubjectID: 7,
		PDF:       "http://files/intro.pdf",
		Image:     "http://files/intro.png",
	}

	got := ContentFromRecord(rec, now)

	if got.ID != "3" || got.SubjectID != "7" {
		t.Fatalf("ids = %q/%q, want \"3\"/\"7\"", got.ID, got.SubjectID)
	}
	if got.Body != "<p>hello</p>" {
		t.Fatalf("Body = %q, want raw HTML preserved", got.Body)
	}
	if got.PDF != "http://files/intro.pdf" || got.Image != "http://files/intro.png" {
		t.Fatalf("asset urls = %q/%q, want carried over", got.PDF, got.Image)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want both %v", got.CreatedAt, got.UpdatedAt, now)
	}
}

func TestMappingIsDeterministic(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := []notesapi.ContentRecord{
		{ID: 1, Title: "A", SubjectID: 7},
		{ID: 2, Title: "B", SubjectID: 7, Text: "<p>b</p>"},
	}

	first := ContentsFromRecords(recs, now)
	second := ContentsFromRecords(recs, now)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("mapping not deterministic:\nfirst  %#v\nsecond %#v", first, second)
	}
}

func TestFromRecordsHandlesEmptyInput(t *testing.T) {
	now := time.Now()

	if got := CoursesFromRecords(nil, now); got == nil || len(got) != 0 {
		t.Fatalf("CoursesFromRecords(nil) = %#v, want empty non-nil slice", got)
	}
	if got := SubjectsFromRecords([]notesapi.SubjectRecord{}, now); got == nil || len(got) != 0 {
		t.Fatalf("SubjectsFromRecords(empty) = %#v, want empty non-nil slice", got)
	}
	if got := ContentsFromRecords(nil, now); got == nil || len(got) != 0 {
		t.Fatalf("ContentsFromRecords(nil) = %#v, want empty non-nil slice", got)
	}
}
