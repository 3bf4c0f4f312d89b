package presentation

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"onthisday/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintEvent(ev domain.StatusEvent) {
	fmt.Fprintln(p.Writer, ev.Message)
}

func (p Printer) PrintFolders(result domain.FolderResult) {
	fmt.Fprintln(p.Writer, "Folders:")
	fmt.Fprintln(p.Writer)
	if len(result.Folders) == 0 {
		fmt.Fprintln(p.Writer, "(none)")
		return
	}
	for _, folder := range result.Folders {
		fmt.Fprintln(p.Writer, folder)
	}
}

func (p Printer) PrintPhotos(result domain.PhotoResult) {
	if len(result.Photos) == 0 {
		return
	}
	fmt.Fprintf(p.Writer, "On this day (%s):\n", result.Day.Format("January 2"))
	fmt.Fprintln(p.Writer)
	for _, line := range formatPhotoLines(result) {
		fmt.Fprintln(p.Writer, line)
	}

	p.printWarnings(result.Warnings)
}

// PrintURLs writes one URL per line, for piping into other tools.
func (p Printer) PrintURLs(result domain.PhotoResult) {
	for _, url := range result.URLs() {
		fmt.Fprintln(p.Writer, url)
	}
}

func (p Printer) PrintFetch(report domain.FetchReport) {
	fmt.Fprintln(p.Writer, "Downloaded:")
	fmt.Fprintln(p.Writer)
	for _, line := range formatFetchLines(report.Downloaded) {
		fmt.Fprintln(p.Writer, line)
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Downloaded %d photos (%s), skipped %d already present.\n",
		len(report.Downloaded), humanize.IBytes(uint64(report.Bytes)), len(report.Skipped))

	p.printWarnings(report.Warnings)
}

func (p Printer) printWarnings(warnings []string) {
	if !p.Verbose || len(warnings) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Warnings:")
	for _, warning := range warnings {
		fmt.Fprintln(p.Writer, "- "+warning)
	}
}

func formatPhotoLines(result domain.PhotoResult) []string {
	lines := make([]string, 0, len(result.Photos))
	for _, photo := range result.Photos {
		age := humanize.RelTime(photo.LastModified, result.Day, "ago", "from now")
		line := fmt.Sprintf("%s  %s (%s)", photo.Name, photo.LastModified.Format("2006-01-02"), age)
		if photo.Size >= 0 {
			line += "  " + humanize.IBytes(uint64(photo.Size))
		}
		lines = append(lines, line)
	}
	return lines
}

func formatFetchLines(items []domain.FetchItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("Saved %s  taken %s", item.LocalPath, item.TakenAt.Format("2006-01-02 15:04")))
	}

	if len(lines) <= 4 {
		return lines
	}
	truncated := make([]string, 0, 5)
	truncated = append(truncated, lines[:2]...)
	truncated = append(truncated, "...")
	return append(truncated, lines[len(lines)-2:]...)
}
