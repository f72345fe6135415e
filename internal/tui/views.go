package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/search"
	"github.com/mmcdole/shutter/internal/tui/styles"
)

// RenderPhotoRow renders one result row, highlighting filter matches in the title
func RenderPhotoRow(match search.Match, selected bool, width int) string {
	photo := match.Photo

	marker := styles.PrivateDot
	if photo.IsPublic {
		marker = styles.PublicDot
	}

	owner := styles.Truncate(photo.OwnerID, 14)
	titleWidth := width - lipgloss.Width(owner) - 6
	title := styles.Truncate(photo.DisplayTitle(), titleWidth)

	parts := []styles.RowPart{{Text: marker + " "}}
	parts = append(parts, highlightParts(title, match.MatchedIndexes)...)
	parts = append(parts, styles.RowPart{Text: "  " + owner, Dim: true})

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits text into runs, marking the runes starting at the
// matched byte offsets
func highlightParts(text string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: text}}
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		parts = append(parts, styles.RowPart{Text: run.String(), Highlight: runHit})
		run.Reset()
	}

	for i, r := range text {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

// RenderInspector renders the selected photo and its loaded detail
func RenderInspector(photo *domain.PhotoSummary, detail domain.DetailState, imageBase string, width int) string {
	if photo == nil {
		return styles.DimStyle.Render("No photo selected")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Width(width).Render(photo.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("by " + photo.OwnerID))
	b.WriteString("\n\n")

	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("ID: %s", photo.ID)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Visibility: %s", photo.Visibility())))
	b.WriteString("\n\n")

	for _, size := range []struct {
		label string
		size  domain.ImageSize
	}{
		{"Thumbnail", domain.ImageSizeThumbnail},
		{"Medium", domain.ImageSizeMedium},
		{"Large", domain.ImageSizeLarge},
	} {
		b.WriteString(styles.DimStyle.Render(size.label + ": "))
		b.WriteString(styles.LinkStyle.Render(photo.ImageURL(imageBase, size.size)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if detail.PhotoID != photo.ID {
		b.WriteString(styles.DimStyle.Render("enter: load details"))
		return b.String()
	}

	switch {
	case detail.IsLoading:
		b.WriteString(styles.DimStyle.Render("Loading details..."))
	case detail.Err != nil:
		b.WriteString(RenderError(detail.Err, width))
	case detail.Detail != nil:
		b.WriteString(renderDetail(*detail.Detail, width))
	}
	return b.String()
}

func renderDetail(d domain.PhotoDetail, width int) string {
	var b strings.Builder

	b.WriteString(styles.SubtitleStyle.Render("Owner: " + d.Owner.DisplayName()))
	b.WriteString("\n")
	if !d.PostedAt.IsZero() {
		b.WriteString(styles.DimStyle.Render("Posted: " + d.PostedAt.Local().Format(time.DateOnly)))
		b.WriteString("\n")
	}
	if d.TakenAt != "" {
		b.WriteString(styles.DimStyle.Render("Taken: " + d.TakenAt))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render("Views: " + strconv.Itoa(d.ViewCount)))
	b.WriteString("\n")

	if d.Description != "" {
		b.WriteString("\n")
		b.WriteString(wordWrap(d.Description, width))
	}
	return b.String()
}

// RenderStatus renders the footer status line for a search state
func RenderStatus(state domain.SearchState, spinner string, shown, width int) string {
	parts := []string{styles.AccentStyle.Render(state.Query)}

	if state.Page.TotalPages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d", state.Page.PageNumber, state.Page.TotalPages))
	}

	count := fmt.Sprintf("%d photos", len(state.Items))
	if shown != len(state.Items) {
		count = fmt.Sprintf("%d/%d photos", shown, len(state.Items))
	}
	parts = append(parts, count)

	switch {
	case state.IsLoading:
		parts = append(parts, spinner+" loading")
	case state.Err != nil:
		parts = append(parts, RenderError(state.Err, width/2))
	case !state.HasMorePages && len(state.Items) > 0:
		parts = append(parts, styles.DimStyle.Render("end of results"))
	}

	return styles.StatusBarStyle.Width(width).Render(strings.Join(parts, "  "))
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		line := ""
		for _, word := range words {
			if line == "" {
				line = word
			} else if lipgloss.Width(line)+1+lipgloss.Width(word) <= width {
				line += " " + word
			} else {
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderError renders an error message
func RenderError(err error, width int) string {
	msg := "Error: " + err.Error()
	return styles.ErrorStyle.Render(styles.Truncate(msg, width))
}
