package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/metachk/pkg/metachk/report"
)

// PrettyFormatter formats the report with colors and styling using lipgloss.
// It produces a visually appealing output suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *report.Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")

	w.WriteString(f.formatPackages(r))

	if findings := f.formatFindings(r); findings != "" {
		w.WriteString("\n")
		w.WriteString(findings)
	}

	return nil
}

// formatHeader builds the title line with the manifest source.
func (f *PrettyFormatter) formatHeader(r *report.Report) string {
	title := TitleStyle.Render("Manifest audit")
	source := MutedStyle.Render(r.Source)
	return fmt.Sprintf("%s  %s\n", title, source)
}

// formatPackages builds one block per package.
func (f *PrettyFormatter) formatPackages(r *report.Report) string {
	if len(r.Packages) == 0 {
		return MutedStyle.Render("  No tagged packages in manifest") + "\n"
	}

	var sb strings.Builder
	for _, pkg := range r.Packages {
		name := TitleStyle.Render(pkg.Name)
		flags := ""
		if pkg.Setuid {
			flags += " " + FlagStyle.Render("setuid")
		}
		if pkg.Setgid {
			flags += " " + FlagStyle.Render("setgid")
		}
		sb.WriteString(fmt.Sprintf("  %s%s\n", name, flags))

		filesLabel := LabelStyle.Render("files:")
		sizeLabel := LabelStyle.Render("size:")
		if !pkg.Known {
			unknown := WarningStyle.Render("? (inconsistent duplicate entries)")
			sb.WriteString(fmt.Sprintf("    %s %s\n", filesLabel, unknown))
			sb.WriteString(fmt.Sprintf("    %s %s\n", sizeLabel, unknown))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s %s\n",
			filesLabel, ValueStyle.Render(fmt.Sprintf("%d", pkg.Files))))
		sb.WriteString(fmt.Sprintf("    %s %s\n",
			sizeLabel, SizeStyle.Render(humanize.IBytes(uint64(pkg.Size)))))
	}
	return sb.String()
}

// formatFindings builds the warning and error sections.
func (f *PrettyFormatter) formatFindings(r *report.Report) string {
	var sb strings.Builder

	for _, d := range r.Warnings() {
		sb.WriteString(fmt.Sprintf("  %s %s exists in multiple locations: line %s\n",
			WarningStyle.Render("warning:"), ValueStyle.Render(d.Name), joinLines(d.Lines)))
	}

	for _, d := range r.Errors() {
		sb.WriteString(fmt.Sprintf("  %s %s exists in multiple locations: line %s with different %s\n",
			ErrorStyle.Render("error:"), ValueStyle.Render(d.Name), joinLines(d.Lines),
			ErrorStyle.Render(d.ConflictKey)))
	}

	for _, hl := range r.HardLinks {
		sb.WriteString(fmt.Sprintf("  %s %s (line %s) are hard links with different %s\n",
			ErrorStyle.Render("error:"), ValueStyle.Render(strings.Join(hl.Names, ",")),
			joinLines(hl.Lines), ErrorStyle.Render(hl.ConflictKey)))
	}

	if sb.Len() == 0 {
		return SuccessStyle.Render("  No duplicate or conflicting entries") + "\n"
	}
	return sb.String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
