package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getComplianceSummaryTool defines the get_compliance_summary MCP tool.
var getComplianceSummaryTool = mcp.NewTool("get_compliance_summary",
	mcp.WithDescription("Derive the organization's current compliance state: score, security level, reporting duties, and the full action list."),
	mcp.WithString("org_id",
		mcp.Required(),
		mcp.Description("Organization identifier"),
	),
)

// listActionsTool defines the list_actions MCP tool.
var listActionsTool = mcp.NewTool("list_actions",
	mcp.WithDescription("List the organization's open compliance actions, optionally filtered by status or priority."),
	mcp.WithString("org_id",
		mcp.Required(),
		mcp.Description("Organization identifier"),
	),
	mcp.WithString("status",
		mcp.Description("Filter by action status"),
		mcp.Enum("pending_dpo", "pending_user", "completed", "auto_resolved", "not_applicable"),
	),
	mcp.WithString("priority",
		mcp.Description("Filter by priority"),
		mcp.Enum("critical", "high", "medium", "low"),
	),
)

// searchGuidanceTool defines the search_guidance MCP tool.
var searchGuidanceTool = mcp.NewTool("search_guidance",
	mcp.WithDescription("Search the privacy law guidance knowledge base semantically."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results (default 5)"),
	),
	mcp.WithString("topic",
		mcp.Description("Restrict results to one topic"),
		mcp.Enum("dpo", "registration", "security", "consent", "incidents", "rights", "enforcement"),
	),
)

// listOverdueRequestsTool defines the list_overdue_requests MCP tool.
var listOverdueRequestsTool = mcp.NewTool("list_overdue_requests",
	mcp.WithDescription("List data-subject rights requests that passed their statutory deadline."),
	mcp.WithString("org_id",
		mcp.Required(),
		mcp.Description("Organization identifier"),
	),
)
