package tracer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportKind selects an export renderer, mirroring format.FormatLevel's
// role as the dispatch key in internal/claudecode/format.
type ExportKind int

const (
	ExportJSON ExportKind = iota
	ExportMermaid
	ExportDOT
	ExportHTML
)

// Exporter renders a tracer's recorded edges into a specific format.
type Exporter interface {
	Export(edges []Edge) (string, error)
	Kind() ExportKind
}

// NewExporter returns the renderer for kind.
func NewExporter(kind ExportKind) Exporter {
	switch kind {
	case ExportMermaid:
		return mermaidExporter{}
	case ExportDOT:
		return dotExporter{}
	case ExportHTML:
		return htmlExporter{}
	default:
		return jsonExporter{}
	}
}

type jsonExporter struct{}

func (jsonExporter) Kind() ExportKind { return ExportJSON }

func (jsonExporter) Export(edges []Edge) (string, error) {
	data, err := json.MarshalIndent(edges, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type mermaidExporter struct{}

func (mermaidExporter) Kind() ExportKind { return ExportMermaid }

func (mermaidExporter) Export(edges []Edge) (string, error) {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, e := range edges {
		if e.PrimaryID != "" {
			fmt.Fprintf(&b, "  %s -->|%s| %s\n", sanitize(e.PrimaryID), e.RuleID, sanitize(e.Conclusion))
		}
		if e.SecondaryID != "" {
			fmt.Fprintf(&b, "  %s -->|%s| %s\n", sanitize(e.SecondaryID), e.RuleID, sanitize(e.Conclusion))
		}
	}
	return b.String(), nil
}

type dotExporter struct{}

func (dotExporter) Kind() ExportKind { return ExportDOT }

func (dotExporter) Export(edges []Edge) (string, error) {
	var b strings.Builder
	b.WriteString("digraph derivation {\n")
	for _, e := range edges {
		if e.PrimaryID != "" {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.PrimaryID, e.Conclusion, e.RuleID)
		}
		if e.SecondaryID != "" {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.SecondaryID, e.Conclusion, e.RuleID)
		}
	}
	b.WriteString("}\n")
	return b.String(), nil
}

type htmlExporter struct{}

func (htmlExporter) Kind() ExportKind { return ExportHTML }

func (htmlExporter) Export(edges []Edge) (string, error) {
	var b strings.Builder
	b.WriteString("<table><thead><tr><th>rule</th><th>primary</th><th>secondary</th><th>conclusion</th><th>depth</th></tr></thead><tbody>\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>\n",
			escapeHTML(e.RuleID), escapeHTML(e.PrimaryID), escapeHTML(e.SecondaryID), escapeHTML(e.Conclusion), e.Depth)
	}
	b.WriteString("</tbody></table>\n")
	return b.String(), nil
}

func sanitize(id string) string {
	r := strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "", ",", "_")
	return r.Replace(id)
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
