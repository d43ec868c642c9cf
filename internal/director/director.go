package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filmcraft/internal/llm"
	"filmcraft/internal/store"
)

const (
	DefaultMaxIterations = 5
	DefaultHistoryWindow = 20
)

// ErrProjectNotFound is returned when the project does not exist or belongs
// to another user.
var ErrProjectNotFound = errors.New("project not found")

// Store is everything the director needs from persistence.
type Store interface {
	ProjectStore
	store.TranscriptStore
}

// Director runs the planner loop: it alternates between asking the model
// what to do and executing the tool calls it returns. A Director is safe for
// concurrent use; invocations share nothing but the store.
type Director struct {
	store      Store
	invoker    llm.Invoker
	registry   *Registry
	dispatcher *Dispatcher
	logger     *zap.Logger

	model         string
	maxIterations int
	historyWindow int
	batchSize     int
}

type Option func(*Director)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Director) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithModel overrides the invoker's default model for every call.
func WithModel(model string) Option {
	return func(d *Director) { d.model = model }
}

func WithMaxIterations(n int) Option {
	return func(d *Director) {
		if n > 0 {
			d.maxIterations = n
		}
	}
}

func WithHistoryWindow(n int) Option {
	return func(d *Director) {
		if n > 0 {
			d.historyWindow = n
		}
	}
}

func WithDirectorBatchSize(n int) Option {
	return func(d *Director) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

func New(st Store, invoker llm.Invoker, opts ...Option) (*Director, error) {
	if st == nil {
		return nil, errors.New("director: store is required")
	}
	if invoker == nil {
		return nil, errors.New("director: invoker is required")
	}
	d := &Director{
		store:         st,
		invoker:       invoker,
		logger:        zap.NewNop(),
		maxIterations: DefaultMaxIterations,
		historyWindow: DefaultHistoryWindow,
		batchSize:     defaultBatchSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	registry, err := NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("building tool registry: %w", err)
	}
	expander, err := NewExpander(invoker, d.model)
	if err != nil {
		return nil, fmt.Errorf("building expander: %w", err)
	}
	d.registry = registry
	d.dispatcher = NewDispatcher(st, expander,
		WithDispatchLogger(d.logger.Named("dispatch")),
		WithBatchSize(d.batchSize),
	)
	return d, nil
}

func (d *Director) Registry() *Registry { return d.registry }

func (d *Director) Dispatcher() *Dispatcher { return d.dispatcher }

type MessageRequest struct {
	ProjectID int64
	UserID    string
	Message   string
	History   []store.ChatMessage
	ImageURLs []string
}

// ActionRecord is one executed tool call as reported to the caller.
type ActionRecord struct {
	Type    string         `json:"type"`
	Data    map[string]any `json:"data,omitempty"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
}

type Reply struct {
	Response string         `json:"response"`
	Actions  []ActionRecord `json:"actions"`
}

type toolOutcome struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

func (d *Director) Authorize(ctx context.Context, projectID int64, userID string) (*store.Project, error) {
	return Authorize(ctx, d.store, projectID, userID)
}

// Authorize loads the project and checks it belongs to userID. A project
// owned by someone else reads as not found.
func Authorize(ctx context.Context, st store.ProjectStore, projectID int64, userID string) (*store.Project, error) {
	project, err := st.GetProjectByID(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %d: %w", projectID, err)
	}
	if project.UserID != userID {
		return nil, fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}
	return project, nil
}

// ProcessMessage runs one planner invocation. Failed tool calls are part of
// the reply; model and transport failures, including tool arguments that are
// not JSON, are returned as errors.
func (d *Director) ProcessMessage(ctx context.Context, req MessageRequest) (*Reply, error) {
	project, err := d.Authorize(ctx, req.ProjectID, req.UserID)
	if err != nil {
		return nil, err
	}
	scenes, err := d.store.GetProjectScenes(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading scenes: %w", err)
	}

	inv := Invocation{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		ImageURLs: req.ImageURLs,
	}
	logger := d.logger.With(zap.String("invocation", inv.ID), zap.Int64("project", inv.ProjectID))
	logger.Info("processing message", zap.Int("history", len(req.History)), zap.Int("images", len(req.ImageURLs)))

	messages := []llm.Message{llm.SystemMessage(systemPrompt(project, scenes))}
	messages = append(messages, historyMessages(req.History, d.historyWindow)...)
	messages = append(messages, llm.UserMessage(req.Message, req.ImageURLs...))
	tools := d.registry.Tools()

	var actions []ActionRecord
	for iteration := 1; iteration <= d.maxIterations; iteration++ {
		resp, err := d.invoker.Invoke(ctx, llm.Request{
			Model:      d.model,
			Messages:   messages,
			Tools:      tools,
			ToolChoice: "auto",
		})
		if err != nil {
			return nil, fmt.Errorf("invoking model (iteration %d): %w", iteration, err)
		}
		msg, err := resp.FirstMessage()
		if err != nil {
			return nil, fmt.Errorf("invoking model (iteration %d): %w", iteration, err)
		}

		if len(msg.ToolCalls) == 0 {
			logger.Info("final response", zap.Int("iteration", iteration), zap.Int("actions", len(actions)))
			response := strings.TrimSpace(msg.Content)
			if response == "" {
				response = summarizeActions(actions)
			}
			return &Reply{Response: response, Actions: actions}, nil
		}

		logger.Debug("tool calls", zap.Int("iteration", iteration), zap.Int("calls", len(msg.ToolCalls)))
		calls := withCallIDs(msg.ToolCalls)
		messages = append(messages, llm.AssistantMessage(msg.Content, calls))

		for _, call := range calls {
			action, err := d.registry.Parse(call)
			if err != nil {
				return nil, err
			}
			result := d.dispatcher.Execute(ctx, inv, action)
			actions = append(actions, ActionRecord{
				Type:    result.ActionType,
				Data:    result.ActionData,
				Success: result.Success,
				Message: result.Message,
			})

			content, err := json.Marshal(toolOutcome{Success: result.Success, Result: result.Message})
			if err != nil {
				return nil, fmt.Errorf("encoding tool result: %w", err)
			}
			messages = append(messages, llm.ToolMessage(call.ID, call.Function.Name, string(content)))
		}
	}

	logger.Warn("iteration cap reached", zap.Int("max_iterations", d.maxIterations), zap.Int("actions", len(actions)))
	return &Reply{Response: summarizeActions(actions), Actions: actions}, nil
}

// historyMessages converts the last window transcript turns into chat turns.
func historyMessages(history []store.ChatMessage, window int) []llm.Message {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case store.RoleUser:
			out = append(out, llm.UserMessage(m.Content))
		case store.RoleAssistant:
			if m.Content != "" {
				out = append(out, llm.AssistantMessage(m.Content, nil))
			}
		case store.RoleSystem:
			out = append(out, llm.SystemMessage(m.Content))
		}
	}
	return out
}

func withCallIDs(calls []llm.ToolCall) []llm.ToolCall {
	out := make([]llm.ToolCall, len(calls))
	for i, c := range calls {
		if c.ID == "" {
			c.ID = "call_" + uuid.NewString()
		}
		if c.Type == "" {
			c.Type = "function"
		}
		out[i] = c
	}
	return out
}

// summarizeActions renders one ✓ or ✗ line per action, in call order.
func summarizeActions(actions []ActionRecord) string {
	if len(actions) == 0 {
		return "I couldn't work out what to do with that. Could you rephrase?"
	}
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		mark := "✓"
		if !a.Success {
			mark = "✗"
		}
		lines = append(lines, mark+" "+a.Message)
	}
	return strings.Join(lines, "\n")
}
