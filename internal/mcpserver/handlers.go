package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/onboardr/internal/flow"
)

// registerTools registers the flow tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("flow-status",
			mcp.WithDescription("Show the current onboarding step, its options and whether moving forward is allowed"),
		),
		s.handleStatus,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("flow-advance",
			mcp.WithDescription("Move to the next step. Refused while the current step is incomplete"),
		),
		s.handleAdvance,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("flow-retreat",
			mcp.WithDescription("Move back one step"),
		),
		s.handleRetreat,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("flow-jump",
			mcp.WithDescription("Jump directly to a step by zero-based index"),
			mcp.WithNumber("index", mcp.Required(),
				mcp.Description("Zero-based step index"),
			),
		),
		s.handleJump,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("flow-select",
			mcp.WithDescription("Choose an option on the current selection step"),
			mcp.WithNumber("option", mcp.Required(),
				mcp.Description("Zero-based option index"),
			),
		),
		s.handleSelect,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("flow-finish",
			mcp.WithDescription("Finish onboarding. Only allowed on the completed last step"),
		),
		s.handleFinish,
	)
	if s.journal != nil {
		s.mcpServer.AddTool(
			mcp.NewTool("flow-history",
				mcp.WithDescription("List every navigation event recorded for this flow"),
			),
			s.handleHistory,
		)
	}
}

// status is the JSON shape returned by most tools.
type status struct {
	Index      int            `json:"index"`
	Count      int            `json:"count"`
	Step       string         `json:"step"`
	Heading    string         `json:"heading,omitempty"`
	Indicator  string         `json:"indicator"`
	CanAdvance bool           `json:"can_advance"`
	Complete   bool           `json:"complete"`
	Finished   bool           `json:"finished"`
	Options    []statusOption `json:"options,omitempty"`
	Outcome    string         `json:"outcome,omitempty"`
}

type statusOption struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

// statusResult must be called with flowMu held.
func (s *Server) statusResult(outcome string) (*mcp.CallToolResult, error) {
	snap := s.flow.Snapshot()
	st := status{
		Index:      snap.Index,
		Count:      snap.Count,
		Step:       snap.Step.String(),
		Indicator:  indicatorText(snap.Index, snap.Count),
		CanAdvance: snap.CanAdvance,
		Complete:   snap.Complete,
		Finished:   snap.Finished,
		Outcome:    outcome,
	}
	if s.content != nil && snap.Index < len(s.content.Steps) {
		st.Heading = s.content.Steps[snap.Index].Heading
	}
	for i, o := range snap.Options {
		st.Options = append(st.Options, statusOption{Index: i, Title: o.Title, Selected: o.Selected})
	}

	data, err := json.Marshal(st)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// indicatorText renders the page dots, e.g. "○●○○".
func indicatorText(index, count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		if i == index {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()
	return s.statusResult("")
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()

	out, err := s.flow.Advance()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.statusResult(out.String())
}

func (s *Server) handleRetreat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()

	out, err := s.flow.Retreat()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.statusResult(out.String())
}

func (s *Server) handleJump(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := intArg(request, "index")
	if errResult != nil {
		return errResult, nil
	}

	s.flowMu.Lock()
	defer s.flowMu.Unlock()

	if err := s.flow.JumpTo(index); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.statusResult("moved")
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	option, errResult := intArg(request, "option")
	if errResult != nil {
		return errResult, nil
	}

	s.flowMu.Lock()
	defer s.flowMu.Unlock()

	if err := s.flow.Select(option); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.statusResult("selected")
}

func (s *Server) handleFinish(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()

	if err := s.flow.Finish(); err != nil {
		if errors.Is(err, flow.ErrNotComplete) {
			return mcp.NewToolResultError("onboarding is not complete yet: " + err.Error()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.statusResult("finished")
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := s.journal.History(ctx, s.journal.FlowID())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}

	var b strings.Builder
	if len(records) == 0 {
		return mcp.NewToolResultText("no events recorded"), nil
	}
	for _, r := range records {
		fmt.Fprintf(&b, "%d %s index=%d step=%s", r.Seq, r.Kind, r.Index, r.Step)
		if r.Title != "" {
			fmt.Fprintf(&b, " option=%d %q", r.Option, r.Title)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

// intArg extracts a non-negative integer argument. JSON numbers arrive as
// float64.
func intArg(request mcp.CallToolRequest, name string) (int, *mcp.CallToolResult) {
	args := request.GetArguments()
	if args == nil {
		return 0, mcp.NewToolResultError("no arguments provided")
	}
	raw, ok := args[name]
	if !ok {
		return 0, mcp.NewToolResultError(fmt.Sprintf("missing '%s' parameter", name))
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, mcp.NewToolResultError(fmt.Sprintf("'%s' must be an integer", name))
	}
	return int(f), nil
}
