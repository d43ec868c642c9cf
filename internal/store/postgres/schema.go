package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Note: the script runs as one simple-protocol call, which PostgreSQL
	// executes in a single implicit transaction. IF NOT EXISTS keeps it safe to
	// rerun; column changes will need a versioned migration instead.
	ddl := `
CREATE TABLE IF NOT EXISTS projects (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    user_id     TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    genre       TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS characters (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    project_id  BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS scenes (
    id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    project_id          BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    order_index         INTEGER NOT NULL,
    title               TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT '',
    time_of_day         TEXT NOT NULL DEFAULT '',
    weather             TEXT NOT NULL DEFAULT '',
    lighting            TEXT NOT NULL DEFAULT '',
    camera_angle        TEXT NOT NULL DEFAULT '',
    mood                TEXT NOT NULL DEFAULT '',
    duration            INTEGER NOT NULL DEFAULT 30,
    transition_type     TEXT NOT NULL DEFAULT 'cut',
    transition_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
    color_grading       TEXT NOT NULL DEFAULT '',
    production_notes    TEXT NOT NULL DEFAULT '',
    status              TEXT NOT NULL DEFAULT 'draft'
);

CREATE TABLE IF NOT EXISTS dialogue_lines (
    id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    scene_id       BIGINT NOT NULL REFERENCES scenes(id) ON DELETE CASCADE,
    order_index    INTEGER NOT NULL,
    character_name TEXT NOT NULL,
    line           TEXT NOT NULL,
    emotion        TEXT NOT NULL DEFAULT '',
    direction      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sound_effects (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    scene_id   BIGINT REFERENCES scenes(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL,
    start_time DOUBLE PRECISION NOT NULL DEFAULT 0,
    volume     DOUBLE PRECISION NOT NULL DEFAULT 0.8
);

CREATE TABLE IF NOT EXISTS visual_effects (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    scene_id   BIGINT REFERENCES scenes(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL,
    intensity  DOUBLE PRECISION NOT NULL DEFAULT 0.7,
    duration   DOUBLE PRECISION NOT NULL DEFAULT 3,
    start_time DOUBLE PRECISION NOT NULL DEFAULT 0,
    color_tint TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS chat_messages (
    id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    project_id    BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    user_id       TEXT NOT NULL,
    role          TEXT NOT NULL,
    content       TEXT NOT NULL,
    action_type   TEXT NOT NULL DEFAULT '',
    action_data   JSONB,
    action_status TEXT NOT NULL DEFAULT 'none',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_scenes_project_order ON scenes (project_id, order_index);
CREATE INDEX IF NOT EXISTS idx_characters_project ON characters (project_id);
CREATE INDEX IF NOT EXISTS idx_dialogue_scene_order ON dialogue_lines (scene_id, order_index);
CREATE INDEX IF NOT EXISTS idx_sound_effects_project ON sound_effects (project_id);
CREATE INDEX IF NOT EXISTS idx_visual_effects_project ON visual_effects (project_id);
CREATE INDEX IF NOT EXISTS idx_chat_project_user ON chat_messages (project_id, user_id, id);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
