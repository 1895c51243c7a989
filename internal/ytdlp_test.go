package internal

import "testing"

func TestParseVideoMetadata(t *testing.T) {
	metadata, err := parseVideoMetadata([]byte(`{"id":"tAP1eZYEuKA","title":"My Clip","duration":42.5,"width":1080,"height":1920}`))
	if err != nil {
		t.Fatalf("parseVideoMetadata: %v", err)
	}
	if metadata.ID != "tAP1eZYEuKA" || metadata.Title != "My Clip" || metadata.Duration != 42.5 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	if _, err := parseVideoMetadata([]byte(`{"title":"no id"}`)); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		title string
		id    string
		want  string
	}{
		{title: "My Clip", id: "x", want: "My_Clip"},
		{title: "  100% real: part/2 ", id: "x", want: "100_real_part_2"},
		{title: "déjà-vu", id: "x", want: "déjà-vu"},
		{title: "!!!", id: "tAP1eZYEuKA", want: "tAP1eZYEuKA"},
	}
	for _, tt := range tests {
		got := downloadName(&VideoMetadata{ID: tt.id, Title: tt.title})
		if got != tt.want {
			t.Errorf("downloadName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
