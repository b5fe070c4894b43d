package ui

import (
	"testing"

	"lectern/internal/model"
)

func TestListWindow(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		total    int
		visible  int
		want     int
	}{
		{"fits", 3, 5, 10, 0},
		{"top", 0, 20, 10, 0},
		{"within first page", 9, 20, 10, 0},
		{"scrolled", 10, 20, 10, 1},
		{"bottom", 19, 20, 10, 10},
		{"no room", 5, 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listWindow(tt.selected, tt.total, tt.visible); got != tt.want {
				t.Fatalf("listWindow(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}

func TestContentMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content model.Content
		want    string
	}{
		{"empty", model.Content{}, ""},
		{"text only", model.Content{Body: "<p>hi</p>"}, "[txt]"},
		{"whitespace body", model.Content{Body: "   "}, ""},
		{"pdf only", model.Content{PDF: "http://files/a.pdf"}, "[pdf]"},
		{"all", model.Content{Body: "x", PDF: "p", Image: "i"}, "[txt,pdf,img]"},
		{"image and pdf", model.Content{PDF: "p", Image: "i"}, "[pdf,img]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentMarkers(tt.content); got != tt.want {
				t.Fatalf("contentMarkers(%#v) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
