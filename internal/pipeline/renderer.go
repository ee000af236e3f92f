package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Renderer writes reports as JSON/Markdown files and stdout summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any report as indented JSON
func (r *Renderer) RenderJSON(report interface{}, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderClaimMarkdown writes a claim report as Markdown
func (r *Renderer) RenderClaimMarkdown(report *model.ClaimReport, path string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Source check: %s\n\n", report.Claim))
	b.WriteString(fmt.Sprintf("Checked at: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC")))

	if len(report.Results) == 0 {
		b.WriteString("No sources found.\n")
	} else {
		b.WriteString("| # | Score | Quality | Similarity | Source |\n")
		b.WriteString("|---|-------|---------|------------|--------|\n")
		for i, sr := range report.Results {
			title := sr.Result.Title
			if title == "" {
				title = "(untitled)"
			}
			source := title
			if sr.Result.URL != "" {
				source = fmt.Sprintf("[%s](%s)", title, sr.Result.URL)
			}
			quality := fmt.Sprintf("%.1f", sr.QualityScore)
			if sr.DefaultQuality {
				quality += "*"
			}
			b.WriteString(fmt.Sprintf("| %d | %.1f | %s | %.1f | %s |\n",
				i+1, sr.TotalScore, quality, sr.SimilarityScore, source))
		}
		b.WriteString("\n\\* default score: domain not in credibility dataset\n")
	}

	if len(report.LinkChecks) > 0 {
		b.WriteString("\n## Link checks\n\n")
		for _, check := range report.LinkChecks {
			status := "dead"
			switch {
			case check.RobotsDenied:
				status = "robots.txt denied"
			case check.IsAccessible:
				status = fmt.Sprintf("ok (%d)", check.StatusCode)
			case check.StatusCode > 0:
				status = fmt.Sprintf("inaccessible (%d)", check.StatusCode)
			case check.Error != "":
				status = check.Error
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", check.URL, status))
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\nGenerated by claimlens. Scores describe source reputation and relevance, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderClaimSummary prints a short ranking summary to stdout
func (r *Renderer) RenderClaimSummary(report *model.ClaimReport) {
	fmt.Printf("Claim: %s\n", report.Claim)
	if len(report.Results) == 0 {
		fmt.Println("No sources found.")
		return
	}

	fmt.Printf("Sources (%d, best first):\n", len(report.Results))
	for i, sr := range report.Results {
		title := sr.Result.Title
		if title == "" {
			title = "(untitled)"
		}
		marker := ""
		if sr.DefaultQuality {
			marker = "*"
		}
		fmt.Printf("  %2d. %5.1f  (quality %.1f%s, similarity %.1f)  %s\n",
			i+1, sr.TotalScore, sr.QualityScore, marker, sr.SimilarityScore, title)
		if sr.Result.URL != "" {
			fmt.Printf("      %s\n", sr.Result.URL)
		}
		if sr.Error != "" {
			fmt.Printf("      (scoring error: %s)\n", sr.Error)
		}
	}
}

// RenderPostSummary prints extracted clauses and claims to stdout
func (r *Renderer) RenderPostSummary(report *model.PostReport) {
	fmt.Printf("Clauses: %d\n", len(report.Clauses))
	fmt.Printf("Claims:  %d\n", len(report.Claims))
	for i, claim := range report.Claims {
		fmt.Printf("  %d. %s\n", i+1, claim.Text)
	}
}
