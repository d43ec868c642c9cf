package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const ddl = `
CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	genre       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS characters (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

-- order_index is deliberately not unique: inserts may collide until a reorder runs.
CREATE TABLE IF NOT EXISTS scenes (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id          INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
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
	transition_duration REAL NOT NULL DEFAULT 0,
	color_grading       TEXT NOT NULL DEFAULT '',
	production_notes    TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL DEFAULT 'draft'
);

CREATE TABLE IF NOT EXISTS dialogue_lines (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	scene_id       INTEGER NOT NULL REFERENCES scenes(id) ON DELETE CASCADE,
	order_index    INTEGER NOT NULL,
	character_name TEXT NOT NULL,
	line           TEXT NOT NULL,
	emotion        TEXT NOT NULL DEFAULT '',
	direction      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sound_effects (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	scene_id   INTEGER REFERENCES scenes(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL,
	start_time REAL NOT NULL DEFAULT 0,
	volume     REAL NOT NULL DEFAULT 0.8
);

CREATE TABLE IF NOT EXISTS visual_effects (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	scene_id   INTEGER REFERENCES scenes(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL,
	intensity  REAL NOT NULL DEFAULT 0.7,
	duration   REAL NOT NULL DEFAULT 3,
	start_time REAL NOT NULL DEFAULT 0,
	color_tint TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id    INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id       TEXT NOT NULL,
	role          TEXT NOT NULL,
	content       TEXT NOT NULL,
	action_type   TEXT NOT NULL DEFAULT '',
	action_data   TEXT,
	action_status TEXT NOT NULL DEFAULT 'none',
	created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scenes_project_order ON scenes (project_id, order_index);
CREATE INDEX IF NOT EXISTS idx_characters_project ON characters (project_id);
CREATE INDEX IF NOT EXISTS idx_dialogue_scene_order ON dialogue_lines (scene_id, order_index);
CREATE INDEX IF NOT EXISTS idx_sound_effects_project ON sound_effects (project_id);
CREATE INDEX IF NOT EXISTS idx_visual_effects_project ON visual_effects (project_id);
CREATE INDEX IF NOT EXISTS idx_chat_project_user ON chat_messages (project_id, user_id, id);
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	return nil
}

// splitStatements breaks a DDL script on statement-terminating semicolons,
// dropping comment lines and blank statements.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()

	return statements
}
