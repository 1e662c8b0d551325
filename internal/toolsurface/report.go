package toolsurface

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// reportData is the flattened shape TOML export serializes and the markdown
// template renders from. Grounded on the teacher's formula.go export shape:
// a single flat struct rather than the nested domain types, so the export
// format is stable even if internal types change shape.
type reportData struct {
	MigrationID     string                   `toml:"migration_id"`
	UserName        string                   `toml:"user_name"`
	Phase           string                   `toml:"phase"`
	OverallProgress int                      `toml:"overall_progress"`
	FamilySize      int                      `toml:"family_size,omitempty"`
	PhotoCount      int                      `toml:"photo_count,omitempty"`
	VideoCount      int                      `toml:"video_count,omitempty"`
	FamilyServices  []reportServiceRow       `toml:"family_service"`
}

type reportServiceRow struct {
	Service    string `toml:"service"`
	Total      int    `toml:"total"`
	Invited    int    `toml:"invited"`
	Installed  int    `toml:"installed"`
	Configured int     `toml:"configured"`
}

func buildReportData(overview *store.Overview, services []store.FamilyServiceSummary) reportData {
	d := reportData{
		MigrationID:     overview.Migration.ID,
		UserName:        overview.Migration.UserName,
		Phase:           string(overview.Migration.Phase),
		OverallProgress: overview.Migration.OverallProgress,
	}
	if overview.Migration.FamilySize != nil {
		d.FamilySize = *overview.Migration.FamilySize
	}
	if overview.Migration.PhotoCount != nil {
		d.PhotoCount = *overview.Migration.PhotoCount
	}
	if overview.Migration.VideoCount != nil {
		d.VideoCount = *overview.Migration.VideoCount
	}
	for _, svc := range services {
		d.FamilyServices = append(d.FamilyServices, reportServiceRow{
			Service:    string(svc.Service),
			Total:      svc.Total,
			Invited:    svc.Invited,
			Installed:  svc.Installed,
			Configured: svc.Configured,
		})
	}
	return d
}

func renderTOML(d reportData) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return "", fmt.Errorf("encode toml report: %w", err)
	}
	return buf.String(), nil
}

func renderMarkdown(d reportData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Migration Report: %s\n\n", d.UserName)
	fmt.Fprintf(&buf, "- **Migration ID:** %s\n", d.MigrationID)
	fmt.Fprintf(&buf, "- **Phase:** %s\n", d.Phase)
	fmt.Fprintf(&buf, "- **Overall progress:** %d%%\n", d.OverallProgress)
	if d.FamilySize > 0 {
		fmt.Fprintf(&buf, "- **Family size:** %d\n", d.FamilySize)
	}
	if d.PhotoCount > 0 || d.VideoCount > 0 {
		fmt.Fprintf(&buf, "- **Media:** %d photos, %d videos\n", d.PhotoCount, d.VideoCount)
	}
	if len(d.FamilyServices) > 0 {
		buf.WriteString("\n## Family Service Adoption\n\n")
		buf.WriteString("| Service | Total | Invited | Installed | Configured |\n")
		buf.WriteString("|---|---|---|---|---|\n")
		for _, s := range d.FamilyServices {
			fmt.Fprintf(&buf, "| %s | %d | %d | %d | %d |\n", s.Service, s.Total, s.Invited, s.Installed, s.Configured)
		}
	}
	return buf.String()
}
