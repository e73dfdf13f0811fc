package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lbarrett/tempo/internal/repository"
)

// FormatActive renders the currently running timer, or a dim placeholder
// when nothing is running.
func FormatActive(detail *repository.EntryDetail, now time.Time) string {
	if detail == nil {
		return StyleDim.Render("No timer running.") + "\n"
	}

	elapsed := int(now.Sub(detail.Entry.StartTime).Seconds())
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", RunningIndicator(), StyleBold.Render(detail.TaskName))
	if detail.ProjectName != "" {
		project := ProjectStyle(detail.ProjectColor).Render(detail.ProjectName)
		if detail.ClientName != "" {
			fmt.Fprintf(&b, "  %s · %s\n", project, StyleDim.Render(detail.ClientName))
		} else {
			fmt.Fprintf(&b, "  %s\n", project)
		}
	}
	fmt.Fprintf(&b, "  %s  started %s\n",
		StyleHeader.Render(FormatTimerDisplay(elapsed)),
		StyleDim.Render(detail.Entry.StartTime.Local().Format("15:04")))
	return b.String()
}

// FormatEntryList renders a day's entries as a table with a total line.
// Times are shown in loc.
func FormatEntryList(details []repository.EntryDetail, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if len(details) == 0 {
		return StyleDim.Render("No entries.") + "\n"
	}

	var b strings.Builder
	total := 0
	for _, d := range details {
		start := d.Entry.StartTime.In(loc).Format("15:04")
		end := "  now"
		dur := ""
		if d.Entry.EndTime != nil {
			end = d.Entry.EndTime.In(loc).Format("15:04")
			dur = FormatDurationCompact(d.Entry.DurationSeconds)
			total += d.Entry.DurationSeconds
		} else {
			dur = RunningIndicator()
		}

		name := d.TaskName
		if d.ProjectName != "" {
			name = fmt.Sprintf("%s %s", ProjectStyle(d.ProjectColor).Render("▌"), name)
		}
		fmt.Fprintf(&b, "%s-%s  %-8s  %s\n",
			StyleFg.Render(start), StyleFg.Render(end), dur, name)
	}
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("total"), StyleBold.Render(FormatDurationHuman(total)))
	return b.String()
}

// FormatTaskList renders the task mirror with project/client context and
// tracked totals.
func FormatTaskList(details []repository.TaskDetail) string {
	if len(details) == 0 {
		return StyleDim.Render("No tasks.") + "\n"
	}

	var b strings.Builder
	for _, d := range details {
		marker := "  "
		if d.ActiveStart != nil {
			marker = StyleGreen.Render("● ")
		}
		line := fmt.Sprintf("%s%s", marker, StyleBold.Render(d.Task.Name))
		if d.ProjectName != "" {
			line += StyleDim.Render(" · " + d.ProjectName)
		}
		if d.ClientName != "" {
			line += StyleDim.Render(" · " + d.ClientName)
		}
		if d.TotalHours > 0 {
			line += "  " + StyleBlue.Render(FormatHoursHuman(d.TotalHours))
		}
		fmt.Fprintf(&b, "%s\n    %s\n", line, StyleDim.Render(d.Task.ID))
	}
	return b.String()
}
