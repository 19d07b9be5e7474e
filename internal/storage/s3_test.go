package storage

import "testing"

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		id       string
		filename string
		want     string
	}{
		{"with extension", "avatars", "abc-123", "photo.PNG", "avatars/abc-123.png"},
		{"no extension", "courses", "def-456", "cover", "courses/def-456"},
		{"multiple dots", "courses", "ghi-789", "my.course.jpg", "courses/ghi-789.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectKey(tt.prefix, tt.id, tt.filename)
			if got != tt.want {
				t.Errorf("ObjectKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObjectURL(t *testing.T) {
	store := &S3MediaStore{bucket: "media", region: "eu-west-1"}
	got := store.objectURL("avatars/x.png")
	want := "https://media.s3.eu-west-1.amazonaws.com/avatars/x.png"
	if got != want {
		t.Errorf("objectURL() = %q, want %q", got, want)
	}

	store.publicURL = "https://cdn.example.com"
	got = store.objectURL("avatars/x.png")
	if got != "https://cdn.example.com/avatars/x.png" {
		t.Errorf("objectURL() with public URL = %q", got)
	}
}
