package extract

import (
	"strings"
	"testing"
)

func TestText_SkipsInvisibleElements(t *testing.T) {
	htmlContent := `
	<html>
	<head>
		<script>var hidden = "script text";</script>
		<style>body { color: red; }</style>
	</head>
	<body>
		<p>The report was published yesterday.</p>
		<noscript>noscript text</noscript>
		<iframe>iframe text</iframe>
	</body>
	</html>
	`

	text, err := Text(htmlContent)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	if !strings.Contains(text, "The report was published yesterday.") {
		t.Errorf("Expected body text, got %q", text)
	}
	for _, hidden := range []string{"script text", "color: red", "noscript text", "iframe text"} {
		if strings.Contains(text, hidden) {
			t.Errorf("Expected %q to be skipped, got %q", hidden, text)
		}
	}
}

func TestText_JoinsNodesWithSpaces(t *testing.T) {
	text, err := Text(`<div><p>First paragraph here.</p><p>Second paragraph here.</p></div>`)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "First paragraph here. Second paragraph here." {
		t.Errorf("Unexpected joined text: %q", text)
	}
}

func TestText_EmptyDocument(t *testing.T) {
	text, err := Text(`<html><body></body></html>`)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}
