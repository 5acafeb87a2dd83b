package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common dayfocus workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_planning").
		Description("Walk through today's plan and pick what to start with.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Daily Planning Session",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me plan my day. Please:

1. Read today's plan from the dayfocus://plan/today resource
2. Call priority.suggest to find the task I should start with

Then:
- Summarize the morning focus block and why those tasks lead
- Point out quick wins I can clear between meetings
- Flag anything overdue that did not make the plan

Use priority.explain when a ranking looks surprising, tasks.complete once I confirm a task is done, and tasks.toggle if I marked one done by mistake.`,
						},
					},
				},
			}, nil
		})

	return nil
}
