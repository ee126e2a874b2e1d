package ports

import "context"

// ImportWorkspace is a remote workspace/team exposed by the task provider.
type ImportWorkspace struct {
	ID   string
	Name string
}

// ImportList is a task list (or space list) within a workspace.
type ImportList struct {
	ID   string
	Name string
}

// ImportTask is a remote task offered to the picker; Name seeds a local Task.
type ImportTask struct {
	ID   string
	Name string
}

// TaskImporter is the read-only third-party task picker (ClickUp). The
// bearer token is obtained through the OAuth code exchange.
type TaskImporter interface {
	ExchangeCode(ctx context.Context, code string) (accessToken string, err error)
	Workspaces(ctx context.Context, token string) ([]ImportWorkspace, error)
	Lists(ctx context.Context, token, spaceID string) ([]ImportList, error)
	Tasks(ctx context.Context, token, listID string) ([]ImportTask, error)
}
