// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// RenderBuildInfo renders the client build next to what the server reports.
// info may be the zero value when the server is unreachable.
func RenderBuildInfo(build models.AppBuildInfo, info models.AppInfo) string {
	var b strings.Builder

	b.WriteString("Application: Diary Keeper\n")
	b.WriteString("Client version: ")
	b.WriteString(build.BuildVersion())
	b.WriteString("\n")
	b.WriteString("Build date: ")
	b.WriteString(build.BuildDate())
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(build.BuildCommit())
	b.WriteString("\n\n")
	b.WriteString("Server: ")
	b.WriteString(valueOrDash(info.Service))
	b.WriteString(" ")
	b.WriteString(valueOrDash(info.Version))

	if len(info.Features) > 0 {
		b.WriteString("\nFeatures: ")
		b.WriteString(strings.Join(info.Features, ", "))
	}
	if len(info.Security) > 0 {
		b.WriteString("\nSecurity: ")
		b.WriteString(strings.Join(info.Security, ", "))
	}

	return cardStyle.Render(b.String())
}
