package main

import "testing"

func TestTopicTitle(t *testing.T) {
	c := NewTopicCatalog(nil)
	tests := []struct {
		slug, want string
	}{
		{"gdpr", "General Data Protection Regulation (GDPR)"},
		{"ai-act", "EU Artificial Intelligence Act"},
		{"unknown-topic", fallbackTopicTitle},
		{"", fallbackTopicTitle},
	}
	for _, tt := range tests {
		if got := c.Title(tt.slug); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestTopicCatalogFromConfig(t *testing.T) {
	c := NewTopicCatalog([]QuizTopic{
		{Slug: "gdpr", Title: "Data protection"},
		{Slug: "gdpr", Title: "Ignored duplicate"},
		{Slug: "untitled"},
	})

	if got := len(c.All()); got != 2 {
		t.Fatalf("len(All()) = %d, want 2", got)
	}
	if got := c.Title("gdpr"); got != "Data protection" {
		t.Errorf("Title(gdpr) = %q, want the first entry", got)
	}
	if got := c.Title("untitled"); got != fallbackTopicTitle {
		t.Errorf("Title(untitled) = %q, want fallback", got)
	}
	if _, ok := c.Lookup("nis2"); ok {
		t.Errorf("Lookup(nis2) found a default topic in a configured catalog")
	}
}

func TestTopicCatalogMerge(t *testing.T) {
	c := NewTopicCatalog(nil)
	got := c.Merge([]string{"gdpr", "cra"})

	if len(got) != len(defaultTopics)+1 {
		t.Fatalf("len(Merge) = %d, want %d", len(got), len(defaultTopics)+1)
	}
	last := got[len(got)-1]
	if last.Slug != "cra" || last.Title != fallbackTopicTitle {
		t.Errorf("merged topic = %+v, want cra with fallback title", last)
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"gdpr", true},
		{"ai-act", true},
		{"iso27001", true},
		{"", false},
		{"-gdpr", false},
		{"GDPR", false},
		{"../etc/passwd", false},
		{"gdpr.json", false},
	}
	for _, tt := range tests {
		if got := validSlug(tt.slug); got != tt.want {
			t.Errorf("validSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
