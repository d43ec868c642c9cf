package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "memory", input: "sqlite://:memory:", want: ":memory:"},
		{name: "absolute", input: "sqlite:///var/lib/filmcraft.db", want: "/var/lib/filmcraft.db"},
		{name: "dot relative", input: "sqlite://./filmcraft.db", want: "./filmcraft.db"},
		{name: "bare relative", input: "sqlite://data/filmcraft.db", want: "./data/filmcraft.db"},
		{name: "escaped", input: "sqlite://my%20films.db", want: "./my films.db"},
		{name: "query passthrough", input: "sqlite://films.db?cache=shared", want: "./films.db?cache=shared"},
		{name: "wrong scheme", input: "postgres://localhost/films", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseDSN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	script := "-- comment\nCREATE TABLE a (id INTEGER);\n\nCREATE INDEX i ON a (id);\n"
	got := splitStatements(script)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (id INTEGER);" {
		t.Fatalf("unexpected first statement %q", got[0])
	}
}
