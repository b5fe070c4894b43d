// Package notesapi implements the HTTP client for the remote notes backend.
//
// The backend exposes a small REST surface under /notes for courses,
// subjects, and content items. Reads use JSON; creates and updates use
// multipart forms because they may carry file uploads, and the server
// answers them with opaque text rather than the created record.
package notesapi
