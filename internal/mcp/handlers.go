package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/requests"
)

func (s *Server) handleGetComplianceSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := request.RequireString("org_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: org_id"), nil
	}

	summary, err := s.service.Summarize(ctx, orgID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("derive summary: %v", err)), nil
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleListActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := request.RequireString("org_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: org_id"), nil
	}

	summary, err := s.service.Summarize(ctx, orgID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("derive summary: %v", err)), nil
	}

	statusFilter := request.GetString("status", "")
	priorityFilter := request.GetString("priority", "")

	var filtered []compliance.Action
	for _, a := range summary.Actions {
		if statusFilter != "" && string(a.Status) != statusFilter {
			continue
		}
		if priorityFilter != "" && string(a.Priority) != priorityFilter {
			continue
		}
		filtered = append(filtered, a)
	}

	if len(filtered) == 0 {
		return mcp.NewToolResultText("No actions match the given filters."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d action(s):\n\n", len(filtered))
	for _, a := range filtered {
		fmt.Fprintf(&sb, "- [%s] %s (%s, owner: %s)\n  %s\n", a.Priority, a.Title, a.Status, a.Owner, a.Description)
		if a.LegalBasis != "" {
			fmt.Fprintf(&sb, "  Legal basis: %s\n", a.LegalBasis)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSearchGuidance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}
	topic := request.GetString("topic", "")

	results, err := s.knowledge.Search(ctx, query, limit, knowledge.Topic(topic))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No guidance found. The knowledge base may not be indexed yet. Run `mydpo knowledge index` first."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity)
		fmt.Fprintf(&sb, "Title: %s\nSource: %s\n\n%s\n\n", r.Article.Title, r.Article.Source, r.Article.Content)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleListOverdueRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := request.RequireString("org_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: org_id"), nil
	}

	overdue, err := s.requests.List(ctx, requests.ListFilter{OrgID: orgID, OverdueOnly: true})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list requests: %v", err)), nil
	}
	if len(overdue) == 0 {
		return mcp.NewToolResultText("No overdue requests."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d overdue request(s):\n\n", len(overdue))
	for _, r := range overdue {
		fmt.Fprintf(&sb, "- %s request from %s, due %s (status: %s)\n",
			r.Kind, r.SubjectName, r.DueAt.Format("2006-01-02"), r.Status)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
