package notesapi

import (
	"fmt"
	"os"
	"path/filepath"
)

// CourseRecord mirrors a course row returned by /notes/course.
type CourseRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"course_name"`
	Image string `json:"course_image"`
}

// SubjectRecord mirrors a subject row returned by /notes/subject.
type SubjectRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"subject_name"`
	CourseID int64  `json:"course_id"`
	Image    string `json:"subject_image"`
}

// ContentRecord mirrors a content row returned by /notes/content.
type ContentRecord struct {
	ID        int64  `json:"id"`
	Title     string `json:"content_title"`
	Text      string `json:"content_text"`
	SubjectID int64  `json:"subject_id"`
	PDF       string `json:"content_pdf"`
	Image     string `json:"content_image"`
}

// Attachment is a file destined for a multipart upload field.
type Attachment struct {
	Filename string
	Data     []byte
}

// LoadAttachment reads a local file into an Attachment.
func LoadAttachment(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	return &Attachment{Filename: filepath.Base(path), Data: data}, nil
}

// ContentForm carries the fields for creating or updating a content item.
// Text, PDF, and Image are all optional and may be combined freely.
type ContentForm struct {
	Title     string
	Text      string
	SubjectID string
	PDF       *Attachment
	Image     *Attachment
}
