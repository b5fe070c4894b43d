// Package model holds the client-side domain types and the conversions
// from the backend's wire records.
//
// Ids are opaque strings so hierarchy relations compare uniformly no
// matter where a value came from. The CreatedAt/UpdatedAt fields are
// synthesized at map time because the backend does not report them; they
// are display hints, not durable audit data.
package model

import (
	"strconv"
	"time"

	"lectern/internal/notesapi"
)

// Course is a top-level grouping of learning material. Subjects is kept
// for the hierarchy shape but stays empty: the working set is flat
// collections filtered by foreign key.
type Course struct {
	ID        string
	Name      string
	Image     string
	Subjects  []Subject
	CreatedAt time.Time
}

// Subject is a mid-level grouping belonging to exactly one course.
type Subject struct {
	ID        string
	Name      string
	Image     string
	CourseID  string
	Contents  []Content
	CreatedAt time.Time
}

// Content is a leaf learning-material item. Body holds rich text as an
// HTML string; PDF and Image are asset URLs. Any combination of the
// three may be present, including none.
type Content struct {
	ID        string
	Title     string
	Body      string
	SubjectID string
	PDF       string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseFromRecord converts a wire course into its domain form.
func CourseFromRecord(rec notesapi.CourseRecord, now time.Time) Course {
	return Course{
		ID:        formatID(rec.ID),
		Name:      rec.Name,
		Image:     rec.Image,
		Subjects:  []Subject{},
		CreatedAt: now,
	}
}

// SubjectFromRecord converts a wire subject into its domain form.
func SubjectFromRecord(rec notesapi.SubjectRecord, now time.Time) Subject {
	return Subject{
		ID:        formatID(rec.ID),
		Name:      rec.Name,
		Image:     rec.Image,
		CourseID:  formatID(rec.CourseID),
		Contents:  []Content{},
		CreatedAt: now,
	}
}

// ContentFromRecord converts a wire content item into its domain form.
func ContentFromRecord(rec notesapi.ContentRecord, now time.Time) Content {
	return Content{
		ID:        formatID(rec.ID),
		Title:     rec.Title,
		Body:      rec.Text,
		SubjectID: formatID(rec.SubjectID),
		PDF:       rec.PDF,
		Image:     rec.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CoursesFromRecords maps a whole wire collection.
func CoursesFromRecords(recs []notesapi.CourseRecord, now time.Time) []Course {
	out := make([]Course, 0, len(recs))
	for _, rec := range recs {
		out = append(out, CourseFromRecord(rec, now))
	}
	return out
}

// SubjectsFromRecords maps a whole wire collection.
func SubjectsFromRecords(recs []notesapi.SubjectRecord, now time.Time) []Subject {
	out := make([]Subject, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SubjectFromRecord(rec, now))
	}
	return out
}

// ContentsFromRecords maps a whole wire collection.
func ContentsFromRecords(recs []notesapi.ContentRecord, now time.Time) []Content {
	out := make([]Content, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ContentFromRecord(rec, now))
	}
	return out
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
