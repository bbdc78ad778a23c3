package tui

import "github.com/MKhiriev/go-diary-keeper/internal/service"

type listLoadedMsg struct {
	items []service.DiaryView
	err   error
}

type entryLoadedMsg struct {
	item service.DiaryView
	err  error
}

type entryDeletedMsg struct {
	id  int64
	err error
}
