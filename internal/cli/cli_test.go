package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opencode-ai/deskkit/internal/db"
	"github.com/opencode-ai/deskkit/internal/models"
)

func TestParseFieldAssignments(t *testing.T) {
	got, err := parseFieldAssignments([]string{"Name=ada lovelace", " ticket =INC-1=2", "empty="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []fieldAssignment{
		{field: "Name", value: "ada lovelace"},
		{field: "ticket", value: "INC-1=2"},
		{field: "empty", value: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d assignments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("assignment %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	for _, bad := range []string{"novalue", "=value", "  =x"} {
		if _, err := parseFieldAssignments([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-02-28T08:00:00Z", time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC)},
		{"24h", now.Add(-24 * time.Hour)},
		{"90", now.Add(-90 * time.Second)},
	}
	for _, tt := range tests {
		got, err := parseSince(tt.input, now)
		if err != nil {
			t.Fatalf("parseSince(%q): %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseSince(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseSince("yesterday", now); err == nil {
		t.Error("expected error for unparseable value")
	}
}

func TestBuildHistoryQuery(t *testing.T) {
	defer func(kind, tool, since, cursor string, limit int) {
		historyType, historyTool, historySince, historyCursor, historyLimit = kind, tool, since, cursor, limit
	}(historyType, historyTool, historySince, historyCursor, historyLimit)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	historyType = string(models.EventTypeSummaryGenerated)
	historyTool = "subs"
	historySince = "1h"
	historyCursor = "abc"
	historyLimit = 5

	query, err := buildHistoryQuery(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Type == nil || *query.Type != models.EventTypeSummaryGenerated {
		t.Errorf("unexpected type filter: %v", query.Type)
	}
	if query.EntityType == nil || *query.EntityType != models.EntityTypeSubscription {
		t.Errorf("expected subs alias to map to subscription, got %v", query.EntityType)
	}
	if query.Since == nil || !query.Since.Equal(now.Add(-time.Hour)) {
		t.Errorf("unexpected since: %v", query.Since)
	}
	if query.Cursor != "abc" || query.Limit != 5 {
		t.Errorf("unexpected paging: %q %d", query.Cursor, query.Limit)
	}

	historyTool = "fax"
	if _, err := buildHistoryQuery(now); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestRawEditSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	if err := os.WriteFile(path, []byte(`[{"name":"Zoom"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := rawEditSource{file: path}.read("[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[{"name":"Zoom"}]` {
		t.Errorf("unexpected content: %q", got)
	}

	if _, err := (rawEditSource{file: filepath.Join(t.TempDir(), "missing.json")}).read("[]"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRawEditSourceStdin(t *testing.T) {
	original := stdinReader
	stdinReader = strings.NewReader(`[]`)
	defer func() { stdinReader = original }()

	got, err := rawEditSource{stdin: true}.read("ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[]" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestRawEditSourceRejectsMultipleSources(t *testing.T) {
	if _, err := (rawEditSource{file: "a.json", stdin: true}).read(""); err == nil {
		t.Error("expected error when both --file and --stdin are given")
	}
}

func TestConfirmReadsAnswer(t *testing.T) {
	original := confirmInput
	defer func() { confirmInput = original }()

	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}
	for input, want := range tests {
		confirmInput = strings.NewReader(input)
		if got := confirm("Reset?"); got != want {
			t.Errorf("confirm with %q = %v, want %v", input, got, want)
		}
	}
}

func TestConfirmDestructive(t *testing.T) {
	defer func(yes, nonInt bool) { yesFlag, nonInteractive = yes, nonInt }(yesFlag, nonInteractive)

	yesFlag = true
	ok, err := confirmDestructive("Reset?")
	if err != nil || !ok {
		t.Fatalf("expected --yes to confirm, got %v %v", ok, err)
	}

	yesFlag = false
	nonInteractive = true
	ok, err = confirmDestructive("Reset?")
	var preflight *PreflightError
	if ok || !errors.As(err, &preflight) {
		t.Fatalf("expected preflight error without a terminal, got %v %v", ok, err)
	}
	if !strings.Contains(preflight.Hint, "--yes") {
		t.Errorf("expected hint to mention --yes, got %q", preflight.Hint)
	}
}

func TestWriteOutputJSONLines(t *testing.T) {
	defer func(value bool) { jsonlOutput = value }(jsonlOutput)
	jsonlOutput = true

	var buf bytes.Buffer
	if err := WriteOutput(&buf, []map[string]int{{"a": 1}, {"b": 2}}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"a\":1}\n{\"b\":2}\n" {
		t.Errorf("unexpected JSONL output: %q", got)
	}

	buf.Reset()
	if err := WriteOutput(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Errorf("unexpected single value output: %q", got)
	}
}

func TestConfigInitCommand(t *testing.T) {
	tempDir := t.TempDir()

	originalFunc := configDirFunc
	configDirFunc = func() string {
		return tempDir
	}
	defer func() {
		configDirFunc = originalFunc
	}()

	originalForce := configInitForce
	configInitForce = false
	defer func() {
		configInitForce = originalForce
	}()

	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	configPath := filepath.Join(tempDir, "config.yaml")
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
	if !strings.Contains(string(content), "theme: default") {
		t.Errorf("config file doesn't contain expected default:\n%s", content)
	}

	err = configInitCmd.RunE(configInitCmd, nil)
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected preflight error for existing file, got %v", err)
	}

	configInitForce = true
	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("expected --force to overwrite, got %v", err)
	}
}

func TestEventColor(t *testing.T) {
	if eventColor(models.EventTypeTemplatesReset) != colorRed {
		t.Error("expected resets to be red")
	}
	if eventColor(models.EventTypeSummaryCopied) != colorGreen {
		t.Error("expected copies to be green")
	}
	if eventColor(models.EventTypeSessionCleared) != colorCyan {
		t.Error("expected other events to be cyan")
	}
}

func TestEnvTrue(t *testing.T) {
	for _, value := range []string{"1", "true", "YES", "on"} {
		if !envTrue(value) {
			t.Errorf("expected %q to enable non-interactive mode", value)
		}
	}
	for _, value := range []string{"", "0", "false", " No ", "off"} {
		if envTrue(value) {
			t.Errorf("expected %q to leave interactive mode alone", value)
		}
	}
}

func TestTableCell(t *testing.T) {
	if got := tableCell("one\ntwo\n"); got != "one | two" {
		t.Errorf("expected newlines flattened, got %q", got)
	}
	long := strings.Repeat("x", maxCellWidth+10)
	got := tableCell(long)
	if len([]rune(got)) != maxCellWidth || !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncation to %d runes, got %d", maxCellWidth, len([]rune(got)))
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, []string{"NAME", "SELECTED"}, [][]string{
		{"Bitwarden", formatYesNo(true)},
		{"DNS Filter", formatYesNo(false)},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Bitwarden   yes") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestCallSummaryWithEmptyForm(t *testing.T) {
	defer func(value bool) { ephemeral = value }(ephemeral)
	ephemeral = true

	var stdout, stderr bytes.Buffer
	callSummaryCmd.SetOut(&stdout)
	callSummaryCmd.SetErr(&stderr)
	defer func() {
		callSummaryCmd.SetOut(nil)
		callSummaryCmd.SetErr(nil)
	}()

	if err := callSummaryCmd.RunE(callSummaryCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no summary on stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Nothing to summarize") {
		t.Errorf("expected empty-form notice, got %q", stderr.String())
	}
}

func TestStateReport(t *testing.T) {
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	ctx := context.Background()
	if _, err := database.MigrateUp(ctx); err != nil {
		t.Fatal(err)
	}

	report, err := loadStateReport(ctx, database)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Path != ":memory:" || report.Entries == nil || len(report.Entries) != 0 {
		t.Fatalf("unexpected empty report: %+v", report)
	}

	var buf bytes.Buffer
	if err := writeStateReport(&buf, report); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No saved state.") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}

	if err := db.NewKVRepository(database).Set(ctx, "callTemplateForm", `{"caller":"Grace"}`); err != nil {
		t.Fatal(err)
	}
	report, err = loadStateReport(ctx, database)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Entries) != 1 || report.Entries[0].Key != "callTemplateForm" {
		t.Fatalf("unexpected entries: %+v", report.Entries)
	}

	buf.Reset()
	if err := writeStateReport(&buf, report); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Database: :memory:") || !strings.Contains(out, "callTemplateForm") || !strings.Contains(out, "18") {
		t.Errorf("unexpected report output:\n%s", out)
	}
}

func TestStateRequiresDatabase(t *testing.T) {
	defer func(value bool) { ephemeral = value }(ephemeral)
	ephemeral = true

	var preflight *PreflightError
	if err := stateCmd.RunE(stateCmd, nil); !errors.As(err, &preflight) {
		t.Fatalf("expected preflight error with --ephemeral, got %v", err)
	}
}

func TestExistingDirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got := existingDirs([]string{filepath.Join(dir, "missing"), file, dir})
	if len(got) != 1 || got[0] != dir {
		t.Errorf("expected only %q, got %v", dir, got)
	}
}
