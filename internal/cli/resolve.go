package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/lbarrett/tempo/internal/repository"
)

// resolveTask turns a task id or (partial) name into a task id. Exact id
// wins; otherwise a unique case-insensitive name match is accepted.
func resolveTask(ctx context.Context, app *App, ref string) (string, error) {
	if task, err := app.Tasks.GetByID(ctx, ref); err == nil {
		return task.ID, nil
	}

	details, err := app.Tasks.ListDetail(ctx, repository.TaskFilter{})
	if err != nil {
		return "", err
	}

	needle := strings.ToLower(ref)
	var matches []repository.TaskDetail
	for _, d := range details {
		if strings.Contains(strings.ToLower(d.Task.Name), needle) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0].Task.ID, nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Task.Name)
		}
		return "", fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}
