package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ProjectStore is the film project data the director reads and mutates.
type ProjectStore interface {
	CreateProject(ctx context.Context, in ProjectInput) (*Project, error)
	GetProjectByID(ctx context.Context, projectID int64) (*Project, error)
	UpdateProject(ctx context.Context, projectID int64, patch ProjectPatch) (*Project, error)

	CreateCharacter(ctx context.Context, projectID int64, name, description string) (*Character, error)
	GetProjectCharacters(ctx context.Context, projectID int64) ([]Character, error)

	GetProjectScenes(ctx context.Context, projectID int64) ([]Scene, error)
	CreateScene(ctx context.Context, in SceneInput) (*Scene, error)
	UpdateScene(ctx context.Context, sceneID int64, patch ScenePatch) (*Scene, error)
	DeleteScene(ctx context.Context, sceneID int64) error
	ReorderScenes(ctx context.Context, projectID int64, orderedIDs []int64) error

	CreateDialogue(ctx context.Context, in DialogueInput) (*DialogueLine, error)
	GetSceneDialogues(ctx context.Context, sceneID int64) ([]DialogueLine, error)

	CreateSoundEffect(ctx context.Context, in SoundEffectInput) (*SoundEffect, error)
	ListSoundEffectsByProject(ctx context.Context, projectID int64) ([]SoundEffect, error)
	CreateVisualEffect(ctx context.Context, in VisualEffectInput) (*VisualEffect, error)
	ListVisualEffectsByProject(ctx context.Context, projectID int64) ([]VisualEffect, error)
}

// TranscriptStore holds the per-project, per-user chat transcript.
type TranscriptStore interface {
	CreateChatMessage(ctx context.Context, in ChatMessageInput) (*ChatMessage, error)
	// GetProjectChatHistory returns the most recent limit messages, oldest first.
	GetProjectChatHistory(ctx context.Context, projectID int64, userID string, limit int) ([]ChatMessage, error)
	ClearProjectChat(ctx context.Context, projectID int64, userID string) (int64, error)
}

type Store interface {
	ProjectStore
	TranscriptStore

	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// WithinTx runs fn against a transaction-bound ProjectStore. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ProjectStore) error) error
}
