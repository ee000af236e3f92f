package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

func sampleClaimReport() *model.ClaimReport {
	return &model.ClaimReport{
		Claim:     "The sea level rose 10cm since 1993.",
		CheckedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Results: []model.ScoredResult{
			{
				Result:          model.SearchResult{Title: "Sea Level Study", URL: "http://example.com/study"},
				QualityScore:    40,
				SimilarityScore: 30,
				TotalScore:      70,
			},
			{
				Result:         model.SearchResult{},
				QualityScore:   25,
				TotalScore:     25,
				DefaultQuality: true,
			},
		},
		LinkChecks: []model.CheckResult{
			{URL: "http://example.com/study", IsAccessible: true, StatusCode: 200},
			{URL: "http://dead.example.com", StatusCode: 410},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(true)

	if err := r.RenderJSON(sampleClaimReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var parsed model.ClaimReport
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if parsed.Claim != "The sea level rose 10cm since 1993." {
		t.Errorf("unexpected claim: %s", parsed.Claim)
	}
	if len(parsed.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(parsed.Results))
	}
}

func TestRenderClaimMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(true)

	if err := r.RenderClaimMarkdown(sampleClaimReport(), path); err != nil {
		t.Fatalf("RenderClaimMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "| 1 | 70.0 | 40.0 | 30.0 |") {
		t.Error("expected score row for the top result")
	}
	if !strings.Contains(content, "25.0*") {
		t.Error("expected default-quality marker on the unknown-domain row")
	}
	if !strings.Contains(content, "- http://example.com/study: ok (200)") {
		t.Error("expected accessible link-check line")
	}
	if !strings.Contains(content, "- http://dead.example.com: inaccessible (410)") {
		t.Error("expected inaccessible link-check line")
	}
	if !strings.Contains(content, "Generated by claimlens") {
		t.Error("expected footer")
	}
	if strings.Contains(content, "\u2014") {
		t.Error("markdown output must use plain ASCII punctuation")
	}
}

func TestRenderClaimMarkdown_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(false)

	if err := r.RenderClaimMarkdown(sampleClaimReport(), path); err != nil {
		t.Fatalf("RenderClaimMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "Generated by claimlens") {
		t.Error("expected no footer")
	}
}
