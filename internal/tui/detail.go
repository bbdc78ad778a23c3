package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func entryBadge(v service.DiaryView) string {
	switch {
	case !v.Readable:
		return errorStyle.Render("[unreadable]")
	case v.IsEncrypted:
		return lockedStyle.Render("[private]")
	default:
		return publicStyle.Render("[public]")
	}
}

// RenderEntry renders one entry as a card.
func RenderEntry(v service.DiaryView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#%d  %s  %s\n", v.ID, titleStyle.Render(v.Title), entryBadge(v))
	fmt.Fprintf(&b, "Written: %s", formatTime(v.CreatedAt))
	if v.UpdatedAt.After(v.CreatedAt) {
		fmt.Fprintf(&b, "   Edited: %s", formatTime(v.UpdatedAt))
	}
	b.WriteString("\n\n")

	if v.Readable {
		b.WriteString(valueOrDash(v.Body))
	} else {
		b.WriteString(helpStyle.Render("This entry was sealed with a different secret."))
	}

	return cardStyle.Render(b.String())
}

// RenderPublicEntry renders an entry from someone's public profile.
func RenderPublicEntry(username string, e models.PublicEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@%s  #%d  %s\n", username, e.ID, titleStyle.Render(e.Title))
	fmt.Fprintf(&b, "Written: %s\n\n", formatTime(e.CreatedAt))
	b.WriteString(valueOrDash(e.Body))

	return cardStyle.Render(b.String())
}

// RenderProfile renders one page of a public profile.
func RenderProfile(p models.PublicProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (@%s)  page %d\n\n", titleStyle.Render(valueOrDash(p.Name)), p.Username, p.Page)
	if len(p.Entries) == 0 {
		b.WriteString("No public entries.\n")
	}
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "%6d  %s  %s\n", e.ID, formatTime(e.CreatedAt), fitText(e.Title, 48))
	}
	if p.HasMore {
		fmt.Fprintf(&b, "\n%s", helpStyle.Render(fmt.Sprintf("more on page %d", p.Page+1)))
	}

	return strings.TrimRight(b.String(), "\n")
}
