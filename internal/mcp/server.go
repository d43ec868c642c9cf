package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

// Scope pins a server to one project. Ownership is checked by the caller
// before the server is built.
type Scope struct {
	ProjectID int64
	UserID    string
}

type Executor interface {
	Execute(ctx context.Context, inv director.Invocation, action director.Action) director.ActionResult
}

type Assistant interface {
	Chat(ctx context.Context, req director.ChatRequest) (*director.Reply, error)
	History(ctx context.Context, projectID int64, userID string, limit int) ([]store.ChatMessage, error)
	VoiceEdit(ctx context.Context, req director.VoiceEditRequest) (*director.VoiceEditResult, error)
}

type Server struct {
	scope     Scope
	registry  *director.Registry
	exec      Executor
	assistant Assistant
	logger    *zap.Logger
	mcp       *sdk.Server
}

func NewServer(scope Scope, registry *director.Registry, exec Executor, assistant Assistant, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		scope:     scope,
		registry:  registry,
		exec:      exec,
		assistant: assistant,
		logger:    logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "filmcraft",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
