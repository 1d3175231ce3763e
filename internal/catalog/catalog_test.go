package catalog

import (
	"strings"
	"testing"
)

const sampleCatalog = `[
	{
		"name": "Mango Smoothie",
		"image": "assets/images/mango.jpg",
		"time": "10 min",
		"ingredients": ["mango", "milk", "honey"],
		"description": "A cool mango drink.",
		"benefits": ["Vitamin C"],
		"steps": ["1. Blend everything."],
		"youtube": "https://www.youtube.com/watch?v=abc123DEF"
	},
	{
		"name": "Banana Shake",
		"image": "assets/images/banana.jpg",
		"time": "5 min",
		"ingredients": ["banana", "milk"],
		"description": "Classic shake.",
		"benefits": [],
		"steps": ["1. Blend."],
		"youtube": ""
	}
]`

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Mango Smoothie", "mango-smoothie"},
		{"multiple spaces", "Mango   Smoothie", "mango-smoothie"},
		{"padded", "  Banana Shake ", "banana-shake"},
		{"single word", "Omelette", "omelette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Mango Smoothie", "mango smoothie"},
		{"strips punctuation", "chef's best-ever dish!", "chefs bestever dish"},
		{"trims", "  milk  ", "milk"},
		{"keeps digits", "5 spice mix", "5 spice mix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadBuildsSearchIndex(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", c.Len())
	}

	mango := c.Recipes()[0]
	if mango.SearchIndex != "mango smoothie mango milk honey" {
		t.Errorf("unexpected search index: %q", mango.SearchIndex)
	}
}

func TestBySlug(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r, ok := c.BySlug("banana-shake")
	if !ok {
		t.Fatal("expected banana-shake to resolve")
	}
	if r.Name != "Banana Shake" {
		t.Errorf("expected Banana Shake, got %q", r.Name)
	}

	if _, ok := c.BySlug("no-such-recipe"); ok {
		t.Error("expected unknown slug to miss")
	}
}

func TestLoadRejectsMalformedCatalog(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"not": "an array"`)); err == nil {
		t.Error("expected error for malformed catalog")
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"watch url", "https://www.youtube.com/watch?v=abc123DEF", "abc123DEF"},
		{"short url", "https://youtu.be/xyz789", "xyz789"},
		{"with params", "https://www.youtube.com/watch?v=abc123DEF&t=10s", "abc123DEF"},
		{"empty", "", ""},
		{"unrelated", "https://example.com/video", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoID(tt.url); got != tt.expected {
				t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
