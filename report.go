package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteNoticeDraftFile writes one employee notice as an .eml draft for
// manual sending. Returns the path written.
func WriteNoticeDraftFile(model EmployeeEmailModel, outputDir string, runDate time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.eml", sanitizeFilename(model.Name), runDate.Format("20060102"))
	path := filepath.Join(outputDir, filename)
	subject := fmt.Sprintf("Attendance points notice - %s", DisplayName(model.Name))
	return path, os.WriteFile(path, []byte(buildEML(subject, model.Body)), 0644)
}

func buildEML(subject, body string) string {
	headers := []string{
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
		fmt.Sprintf("Subject: %s", subject),
	}
	plain := normalizeCRLF(body)

	var out strings.Builder
	out.WriteString(strings.Join(headers, "\r\n"))
	out.WriteString("\r\n\r\n")
	out.WriteString(plain)
	if !strings.HasSuffix(plain, "\r\n") {
		out.WriteString("\r\n")
	}
	return out.String()
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", ",", "", " ", "_")
	return replacer.Replace(s)
}

func normalizeCRLF(s string) string {
	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\n", "\r\n")
}

// FormatRunSummary renders the per-stage counters of one run for the
// log and the optional Slack post.
func FormatRunSummary(result RunResult, inserted int) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d pickups", result.PickupEvents))
	parts = append(parts, fmt.Sprintf("%d call-offs", result.CallOffEvents))
	if result.Cancelled > 0 {
		parts = append(parts, fmt.Sprintf("%d cancelled by work-offs", result.Cancelled))
	}
	parts = append(parts, fmt.Sprintf("%d new ledger rows", inserted))
	return strings.Join(parts, ", ")
}
