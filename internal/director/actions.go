package director

// Action is a decoded, schema-valid tool call. The set is closed: every tool
// the registry offers decodes into exactly one of the types below, and the
// dispatcher switches over all of them.
type Action interface {
	ToolName() string
	action()
}

const (
	ToolAddSoundEffect        = "add_sound_effect"
	ToolModifyScene           = "modify_scene"
	ToolCutScene              = "cut_scene"
	ToolAddScene              = "add_scene"
	ToolReorderScenes         = "reorder_scenes"
	ToolAddDialogue           = "add_dialogue"
	ToolCreateSceneFromVision = "create_scene_from_vision"
	ToolAddVisualEffect       = "add_visual_effect"
	ToolGetProjectSummary     = "get_project_summary"
	ToolSuggestImprovements   = "suggest_improvements"
	ToolGenerateFullFilm      = "generate_full_film"
)

type AddSoundEffect struct {
	SceneName string   `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
	SoundName string   `json:"soundName" jsonschema:"what the sound is, for example distant thunder"`
	Category  string   `json:"category" vocab:"soundCategory"`
	Volume    *float64 `json:"volume,omitempty" jsonschema:"volume between 0 and 1, defaults to 0.8" minimum:"0" maximum:"1"`
	StartTime *float64 `json:"startTime,omitempty" jsonschema:"seconds from the start of the scene" minimum:"0"`
}

type ModifyScene struct {
	SceneName          string   `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
	Title              *string  `json:"title,omitempty" jsonschema:"new scene title"`
	Description        *string  `json:"description,omitempty" jsonschema:"new scene description"`
	TimeOfDay          *string  `json:"timeOfDay,omitempty" vocab:"timeOfDay"`
	Weather            *string  `json:"weather,omitempty" vocab:"weather"`
	Lighting           *string  `json:"lighting,omitempty" vocab:"lighting"`
	CameraAngle        *string  `json:"cameraAngle,omitempty" vocab:"cameraAngle"`
	Mood               *string  `json:"mood,omitempty" vocab:"mood"`
	Duration           *int     `json:"duration,omitempty" jsonschema:"scene length in seconds" minimum:"1"`
	TransitionType     *string  `json:"transitionType,omitempty" vocab:"transitionType"`
	TransitionDuration *float64 `json:"transitionDuration,omitempty" jsonschema:"transition length in seconds" minimum:"0"`
	ColorGrading       *string  `json:"colorGrading,omitempty" vocab:"colorGrading"`
	ProductionNotes    *string  `json:"productionNotes,omitempty" jsonschema:"notes for the crew"`
	Status             *string  `json:"status,omitempty" vocab:"status"`
}

type CutScene struct {
	SceneName string `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
}

type AddScene struct {
	Title          string `json:"title" jsonschema:"scene title"`
	Description    string `json:"description" jsonschema:"what happens in the scene"`
	AfterScene     string `json:"afterScene,omitempty" jsonschema:"scene to insert after, or start to insert first; defaults to the end"`
	TimeOfDay      string `json:"timeOfDay,omitempty" vocab:"timeOfDay"`
	Weather        string `json:"weather,omitempty" vocab:"weather"`
	Lighting       string `json:"lighting,omitempty" vocab:"lighting"`
	CameraAngle    string `json:"cameraAngle,omitempty" vocab:"cameraAngle"`
	Mood           string `json:"mood,omitempty" vocab:"mood"`
	Duration       *int   `json:"duration,omitempty" jsonschema:"scene length in seconds, defaults to 30" minimum:"1"`
	TransitionType string `json:"transitionType,omitempty" vocab:"transitionType"`
}

type ReorderScenes struct {
	SceneName   string `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
	NewPosition int    `json:"newPosition" jsonschema:"1-based position to move the scene to" minimum:"1"`
}

type AddDialogue struct {
	SceneName     string `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
	CharacterName string `json:"characterName" jsonschema:"who speaks the line"`
	Line          string `json:"line" jsonschema:"the spoken line"`
	Emotion       string `json:"emotion,omitempty" jsonschema:"how the line is delivered"`
	Direction     string `json:"direction,omitempty" jsonschema:"stage direction for the actor"`
}

type CreateSceneFromVision struct {
	Vision     string `json:"vision" jsonschema:"free-form description of the scene to build"`
	AfterScene string `json:"afterScene,omitempty" jsonschema:"scene to insert after, or start to insert first; defaults to the end"`
}

type AddVisualEffect struct {
	SceneName  string   `json:"sceneName" jsonschema:"scene number (1-based), exact title, or part of a title"`
	EffectName string   `json:"effectName" jsonschema:"what the effect is, for example lens flare"`
	Category   string   `json:"category" vocab:"vfxCategory"`
	Intensity  *float64 `json:"intensity,omitempty" jsonschema:"strength between 0 and 1, defaults to 0.7" minimum:"0" maximum:"1"`
	Duration   *float64 `json:"duration,omitempty" jsonschema:"effect length in seconds, defaults to 3" minimum:"0"`
	StartTime  *float64 `json:"startTime,omitempty" jsonschema:"seconds from the start of the scene" minimum:"0"`
	ColorTint  string   `json:"colorTint,omitempty" jsonschema:"optional tint such as #ff8800"`
}

type GetProjectSummary struct{}

type SuggestImprovements struct {
	FocusArea string `json:"focusArea" vocab:"focusArea"`
}

type GenerateFullFilm struct {
	Concept         string   `json:"concept" jsonschema:"premise or pitch for the film"`
	DurationMinutes *float64 `json:"durationMinutes,omitempty" jsonschema:"target running time in minutes, defaults to 3" minimum:"0.5" maximum:"120"`
	ImageReferences []string `json:"imageReferences,omitempty" jsonschema:"reference image URLs for the look of the film"`
}

// InvalidAction stands in for a call that named an unknown tool or whose
// arguments failed schema validation. It always executes as a failure.
type InvalidAction struct {
	Tool string
	Err  error
}

func (AddSoundEffect) ToolName() string        { return ToolAddSoundEffect }
func (ModifyScene) ToolName() string           { return ToolModifyScene }
func (CutScene) ToolName() string              { return ToolCutScene }
func (AddScene) ToolName() string              { return ToolAddScene }
func (ReorderScenes) ToolName() string         { return ToolReorderScenes }
func (AddDialogue) ToolName() string           { return ToolAddDialogue }
func (CreateSceneFromVision) ToolName() string { return ToolCreateSceneFromVision }
func (AddVisualEffect) ToolName() string       { return ToolAddVisualEffect }
func (GetProjectSummary) ToolName() string     { return ToolGetProjectSummary }
func (SuggestImprovements) ToolName() string   { return ToolSuggestImprovements }
func (GenerateFullFilm) ToolName() string      { return ToolGenerateFullFilm }
func (a InvalidAction) ToolName() string       { return a.Tool }

func (AddSoundEffect) action()        {}
func (ModifyScene) action()           {}
func (CutScene) action()              {}
func (AddScene) action()              {}
func (ReorderScenes) action()         {}
func (AddDialogue) action()           {}
func (CreateSceneFromVision) action() {}
func (AddVisualEffect) action()       {}
func (GetProjectSummary) action()     {}
func (SuggestImprovements) action()   {}
func (GenerateFullFilm) action()      {}
func (InvalidAction) action()         {}
