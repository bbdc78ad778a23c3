package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
)

const listTitleWidth = 48

func listIcon(v service.DiaryView) string {
	switch {
	case !v.Readable:
		return "[!]"
	case v.IsEncrypted:
		return "[P]"
	default:
		return "[O]"
	}
}

func renderRow(v service.DiaryView) string {
	return fmt.Sprintf("%s %6d  %s  %s", listIcon(v), v.ID, formatTime(v.CreatedAt), fitText(v.Title, listTitleWidth))
}

// RenderList renders entries one per line, newest first as given.
func RenderList(views []service.DiaryView) string {
	if len(views) == 0 {
		return "No entries yet. Write one with `diary write`."
	}

	rows := make([]string, 0, len(views)+2)
	for _, v := range views {
		rows = append(rows, renderRow(v))
	}
	rows = append(rows, "", helpStyle.Render("[P] private  [O] public  [!] sealed with another secret"))

	return strings.Join(rows, "\n")
}
