package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Service defines the operations the backend exposes.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	ListCourses(ctx context.Context, nameFilter string) ([]CourseRecord, error)
	GetCourse(ctx context.Context, id string) (CourseRecord, error)
	CreateCourse(ctx context.Context, name string, image *Attachment) (string, error)
	DeleteCourse(ctx context.Context, id string) (string, error)

	ListSubjects(ctx context.Context, nameFilter, courseID string) ([]SubjectRecord, error)
	GetSubject(ctx context.Context, id string) (SubjectRecord, error)
	CreateSubject(ctx context.Context, name, courseID string, image *Attachment) (string, error)
	DeleteSubject(ctx context.Context, id string) (string, error)

	ListContents(ctx context.Context, titleFilter, subjectID string) ([]ContentRecord, error)
	GetContent(ctx context.Context, id string) (ContentRecord, error)
	CreateContent(ctx context.Context, form ContentForm) (string, error)
	UpdateContent(ctx context.Context, id string, form ContentForm) (string, error)
	DeleteContent(ctx context.Context, id string) (string, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the notes backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the hosted backend instance.
	DefaultBaseURL = "https://my-notes-backend-t5xa.onrender.com"

	defaultUserAgent = "lectern/0.1"

	// The backend sits behind a tunneling proxy that serves an
	// interstitial page unless this header is present.
	bypassHeader = "ngrok-skip-browser-warning"
)

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// NewClient builds a Client for the given base URL. An empty value uses
// the default hosted backend.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// ListCourses retrieves courses, optionally filtered by name.
func (c *Client) ListCourses(ctx context.Context, nameFilter string) ([]CourseRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if name := strings.TrimSpace(nameFilter); name != "" {
		values.Set("course_name", name)
	}
	var payload []CourseRecord
	if err := c.getJSON(ctx, "/notes/course", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetCourse retrieves a single course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (CourseRecord, error) {
	var payload CourseRecord
	if err := c.getJSON(ctx, "/notes/course/"+id, nil, &payload); err != nil {
		return CourseRecord{}, err
	}
	return payload, nil
}

// CreateCourse submits a new course. The image is optional. The response
// body is opaque text; the backend does not echo the created record.
func (c *Client) CreateCourse(ctx context.Context, name string, image *Attachment) (string, error) {
	fields := []formField{{"course_name", name}}
	var files []formFile
	if image != nil {
		files = append(files, formFile{"file", image})
	}
	return c.submitForm(ctx, http.MethodPost, "/notes/course", fields, files)
}

// DeleteCourse removes a course by id.
func (c *Client) DeleteCourse(ctx context.Context, id string) (string, error) {
	return c.deleteJSON(ctx, "/notes/course/"+id)
}

// ListSubjects retrieves subjects, optionally filtered by name and course.
func (c *Client) ListSubjects(ctx context.Context, nameFilter, courseID string) ([]SubjectRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if name := strings.TrimSpace(nameFilter); name != "" {
		values.Set("subject_name", name)
	}
	if id := strings.TrimSpace(courseID); id != "" {
		values.Set("course_id", id)
	}
	var payload []SubjectRecord
	if err := c.getJSON(ctx, "/notes/subject", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetSubject retrieves a single subject by id.
func (c *Client) GetSubject(ctx context.Context, id string) (SubjectRecord, error) {
	var payload SubjectRecord
	if err := c.getJSON(ctx, "/notes/subject/"+id, nil, &payload); err != nil {
		return SubjectRecord{}, err
	}
	return payload, nil
}

// CreateSubject submits a new subject under the given course.
func (c *Client) CreateSubject(ctx context.Context, name, courseID string, image *Attachment) (string, error) {
	fields := []formField{{"subject_name", name}}
	if id := strings.TrimSpace(courseID); id != "" {
		fields = append(fields, formField{"course_id", id})
	}
	var files []formFile
	if image != nil {
		files = append(files, formFile{"file", image})
	}
	return c.submitForm(ctx, http.MethodPost, "/notes/subject", fields, files)
}

// DeleteSubject removes a subject by id.
func (c *Client) DeleteSubject(ctx context.Context, id string) (string, error) {
	return c.deleteJSON(ctx, "/notes/subject/"+id)
}

// ListContents retrieves content items, optionally filtered by title and subject.
func (c *Client) ListContents(ctx context.Context, titleFilter, subjectID string) ([]ContentRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if title := strings.TrimSpace(titleFilter); title != "" {
		values.Set("content_title", title)
	}
	if id := strings.TrimSpace(subjectID); id != "" {
		values.Set("subject_id", id)
	}
	var payload []ContentRecord
	if err := c.getJSON(ctx, "/notes/content", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetContent retrieves a single content item by id.
func (c *Client) GetContent(ctx context.Context, id string) (ContentRecord, error) {
	var payload ContentRecord
	if err := c.getJSON(ctx, "/notes/content/"+id, nil, &payload); err != nil {
		return ContentRecord{}, err
	}
	return payload, nil
}

// CreateContent submits a new content item.
func (c *Client) CreateContent(ctx context.Context, form ContentForm) (string, error) {
	fields, files := contentParts(form)
	return c.submitForm(ctx, http.MethodPost, "/notes/content", fields, files)
}

// UpdateContent replaces a content item. The form shape matches CreateContent.
func (c *Client) UpdateContent(ctx context.Context, id string, form ContentForm) (string, error) {
	fields, files := contentParts(form)
	return c.submitForm(ctx, http.MethodPut, "/notes/content/"+id, fields, files)
}

// DeleteContent removes a content item by id.
func (c *Client) DeleteContent(ctx context.Context, id string) (string, error) {
	return c.deleteJSON(ctx, "/notes/content/"+id)
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name string
	att  *Attachment
}

func contentParts(form ContentForm) ([]formField, []formFile) {
	fields := []formField{
		{"content_title", form.Title},
		{"subject_id", form.SubjectID},
	}
	if text := form.Text; text != "" {
		fields = append(fields, formField{"content_text", text})
	}
	var files []formFile
	if form.PDF != nil {
		files = append(files, formFile{"content_pdf", form.PDF})
	}
	if form.Image != nil {
		files = append(files, formFile{"content_image", form.Image})
	}
	return fields, files
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.String(), Status: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// deleteJSON issues a DELETE and returns the raw response body. The backend
// answers deletes with a JSON-encoded message string.
func (c *Client) deleteJSON(ctx context.Context, path string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &StatusError{Path: rel.String(), Status: resp.StatusCode}
	}
	return strings.TrimSpace(string(body)), nil
}

// submitForm sends a multipart request. The Content-Type comes from the
// multipart writer so the boundary is always correct.
func (c *Client) submitForm(ctx context.Context, method, path string, fields []formField, files []formFile) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return "", fmt.Errorf("write form field %s: %w", field.name, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.name, file.att.Filename)
		if err != nil {
			return "", fmt.Errorf("create form file %s: %w", file.name, err)
		}
		if _, err := part.Write(file.att.Data); err != nil {
			return "", fmt.Errorf("write form file %s: %w", file.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &StatusError{Path: rel.String(), Status: resp.StatusCode}
	}
	return strings.TrimSpace(string(respBody)), nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(bypassHeader, "true")
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
