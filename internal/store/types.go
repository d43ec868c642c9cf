package store

import "time"

type Project struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Genre       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectInput struct {
	UserID      string
	Title       string
	Description string
	Genre       string
}

// ProjectPatch carries the fields to change; nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Genre       *string
}

type Character struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
}

type Scene struct {
	ID                 int64
	ProjectID          int64
	OrderIndex         int
	Title              string
	Description        string
	TimeOfDay          string
	Weather            string
	Lighting           string
	CameraAngle        string
	Mood               string
	Duration           int
	TransitionType     string
	TransitionDuration float64
	ColorGrading       string
	ProductionNotes    string
	Status             string
}

type SceneInput struct {
	ProjectID          int64
	OrderIndex         int
	Title              string
	Description        string
	TimeOfDay          string
	Weather            string
	Lighting           string
	CameraAngle        string
	Mood               string
	Duration           int
	TransitionType     string
	TransitionDuration float64
	ColorGrading       string
	ProductionNotes    string
	Status             string
}

// ScenePatch carries the fields to change; nil fields are left untouched.
type ScenePatch struct {
	Title              *string
	Description        *string
	TimeOfDay          *string
	Weather            *string
	Lighting           *string
	CameraAngle        *string
	Mood               *string
	Duration           *int
	TransitionType     *string
	TransitionDuration *float64
	ColorGrading       *string
	ProductionNotes    *string
	Status             *string
}

// Empty reports whether the patch would change nothing.
func (p ScenePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.TimeOfDay == nil &&
		p.Weather == nil && p.Lighting == nil && p.CameraAngle == nil &&
		p.Mood == nil && p.Duration == nil && p.TransitionType == nil &&
		p.TransitionDuration == nil && p.ColorGrading == nil &&
		p.ProductionNotes == nil && p.Status == nil
}

type DialogueLine struct {
	ID            int64
	SceneID       int64
	OrderIndex    int
	CharacterName string
	Line          string
	Emotion       string
	Direction     string
}

type DialogueInput struct {
	SceneID       int64
	OrderIndex    int
	CharacterName string
	Line          string
	Emotion       string
	Direction     string
}

// SoundEffect with a nil SceneID belongs to the project-level library.
type SoundEffect struct {
	ID        int64
	ProjectID int64
	SceneID   *int64
	Name      string
	Category  string
	StartTime float64
	Volume    float64
}

type SoundEffectInput struct {
	ProjectID int64
	SceneID   *int64
	Name      string
	Category  string
	StartTime float64
	Volume    float64
}

// VisualEffect with a nil SceneID belongs to the project-level library.
type VisualEffect struct {
	ID        int64
	ProjectID int64
	SceneID   *int64
	Name      string
	Category  string
	Intensity float64
	Duration  float64
	StartTime float64
	ColorTint string
}

type VisualEffectInput struct {
	ProjectID int64
	SceneID   *int64
	Name      string
	Category  string
	Intensity float64
	Duration  float64
	StartTime float64
	ColorTint string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

const (
	ActionStatusNone    = "none"
	ActionStatusSuccess = "success"
	ActionStatusPartial = "partial"
	ActionStatusFailed  = "failed"
)

// ChatMessage is an append-only transcript turn.
type ChatMessage struct {
	ID           int64
	ProjectID    int64
	UserID       string
	Role         string
	Content      string
	ActionType   string
	ActionData   map[string]any
	ActionStatus string
	CreatedAt    time.Time
}

type ChatMessageInput struct {
	ProjectID    int64
	UserID       string
	Role         string
	Content      string
	ActionType   string
	ActionData   map[string]any
	ActionStatus string
}
