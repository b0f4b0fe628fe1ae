package report

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/atotto/clipboard"
)

const MdTemplate = `# upkeep run {{ .Report.ID }}

Finished {{ .Finished }}: {{ .Summary }}.

| # | Step | Status | Details |
| --- | --- | --- | --- |
{{- range $i, $oc := .Report.Outcomes }}
| {{ add $i 1 }} | {{ $oc.Description }} | {{ $oc.Status }} | {{ $oc.Reason }} |
{{- end }}
`

var mdTemplate *template.Template

func init() {
	mdTemplate = template.Must(template.New("md").Funcs(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		}}).Parse(MdTemplate))
}

// Markdown renders the report as a markdown document.
func Markdown(r *Report) (string, error) {
	data := struct {
		Report   *Report
		Summary  Summary
		Finished string
	}{
		Report:   r,
		Summary:  Summarize(r),
		Finished: r.FinishedAt.Format(time.RFC1123),
	}

	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing markdown template: %w", err)
	}
	return buf.String(), nil
}

// WriteMarkdown renders the report as a markdown file in the current
// directory and returns its name. The contents are also placed on the
// clipboard when one is available.
func WriteMarkdown(r *Report) (string, error) {
	mdContent, err := Markdown(r)
	if err != nil {
		return "", err
	}

	// Best effort: a missing clipboard should not fail the export.
	defer func() {
		_ = clipboard.WriteAll(mdContent)
	}()

	humanReadableTime := time.Now().Format("2006_01_02_15:04:05")
	fileName := fmt.Sprintf("upkeep_%s.md", humanReadableTime)
	f, err := os.Create(fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(mdContent); err != nil {
		return "", fmt.Errorf("failed to write md to file: %w", err)
	}
	return fileName, nil
}
