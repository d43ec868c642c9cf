package director

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"filmcraft/internal/store"
)

// ProjectStore is the slice of the store the dispatcher mutates.
type ProjectStore interface {
	store.ProjectStore
	WithinTx(ctx context.Context, fn func(store.ProjectStore) error) error
}

// Invocation scopes one planner run or one direct tool call. Callers verify
// that UserID owns ProjectID before dispatching.
type Invocation struct {
	ID        string
	ProjectID int64
	UserID    string
	ImageURLs []string
}

// ActionResult is the uniform outcome of one tool call. Expected failures
// such as an unresolved scene are reported here, never as errors.
type ActionResult struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	ActionType string         `json:"actionType"`
	ActionData map[string]any `json:"actionData,omitempty"`
}

func failed(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}

func succeeded(message string, data map[string]any) ActionResult {
	return ActionResult{Success: true, Message: message, ActionData: data}
}

var errNoExpander = errors.New("scene generation is not configured")

type Dispatcher struct {
	store     ProjectStore
	expander  *Expander
	batchSize int
	logger    *zap.Logger
}

type DispatcherOption func(*Dispatcher)

func WithDispatchLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithBatchSize bounds how many reads the summary handlers run at once.
func WithBatchSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// NewDispatcher builds a dispatcher. A nil expander disables the two
// generative tools; they then fail like any other handler error.
func NewDispatcher(st ProjectStore, expander *Expander, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:     st,
		expander:  expander,
		batchSize: defaultBatchSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs one action. It never returns an error: handler errors and
// panics become failed results.
func (d *Dispatcher) Execute(ctx context.Context, inv Invocation, action Action) (result ActionResult) {
	name := action.ToolName()
	logger := d.logger.With(
		zap.String("invocation", inv.ID),
		zap.Int64("project", inv.ProjectID),
		zap.String("tool", name),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool handler panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			result = failed(fmt.Sprintf("%s failed: %v", name, r))
		}
		result.ActionType = name
		logger.Debug("tool executed", zap.Bool("success", result.Success), zap.String("message", result.Message))
	}()

	var err error
	switch a := action.(type) {
	case AddSoundEffect:
		result, err = d.addSoundEffect(ctx, inv, a)
	case ModifyScene:
		result, err = d.modifyScene(ctx, inv, a)
	case CutScene:
		result, err = d.cutScene(ctx, inv, a)
	case AddScene:
		result, err = d.addScene(ctx, inv, a)
	case ReorderScenes:
		result, err = d.reorderScenes(ctx, inv, a)
	case AddDialogue:
		result, err = d.addDialogue(ctx, inv, a)
	case CreateSceneFromVision:
		result, err = d.createSceneFromVision(ctx, inv, a)
	case AddVisualEffect:
		result, err = d.addVisualEffect(ctx, inv, a)
	case GetProjectSummary:
		result, err = d.getProjectSummary(ctx, inv)
	case SuggestImprovements:
		result, err = d.suggestImprovements(ctx, inv, a)
	case GenerateFullFilm:
		result, err = d.generateFullFilm(ctx, inv, a)
	case InvalidAction:
		err = a.Err
	default:
		err = fmt.Errorf("unsupported action %T", action)
	}
	if err != nil {
		logger.Warn("tool failed", zap.Error(err))
		return failed(err.Error())
	}
	return result
}

// scenes loads the project's scenes in running order.
func (d *Dispatcher) scenes(ctx context.Context, projectID int64) ([]store.Scene, error) {
	scenes, err := d.store.GetProjectScenes(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading scenes: %w", err)
	}
	sortScenes(scenes)
	return scenes, nil
}

// resolveScene loads the scenes and resolves ref. A miss returns ok=false
// with no error.
func (d *Dispatcher) resolveScene(ctx context.Context, projectID int64, ref string) (store.Scene, []store.Scene, bool, error) {
	scenes, err := d.scenes(ctx, projectID)
	if err != nil {
		return store.Scene{}, nil, false, err
	}
	scene, ok := FindScene(scenes, ref)
	return scene, scenes, ok, nil
}
