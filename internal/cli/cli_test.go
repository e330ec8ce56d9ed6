package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/config"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/document"
)

const (
	sampleResume = "Python developer with AWS and Docker experience, reduced latency by 30%"
	sampleJD     = "Looking for a Python developer skilled in AWS Docker Kubernetes and CI/CD"
)

// resetFlags restores every flag to its default so commands can run repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type testEnv struct {
	dir        string
	configPath string
	resumePath string
	jdPath     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		resumePath: filepath.Join(dir, "resume.txt"),
		jdPath:     filepath.Join(dir, "posting.txt"),
	}

	cfg := fmt.Sprintf("[database]\npath = %q\n", filepath.Join(dir, "atsmatch.db"))
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0644))
	require.NoError(t, os.WriteFile(env.resumePath, []byte(sampleResume), 0644))
	require.NoError(t, os.WriteFile(env.jdPath, []byte(sampleJD), 0644))
	return env
}

// run executes the root command with the test config and returns stdout
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (e *testEnv) analyze(t *testing.T, label string) {
	t.Helper()
	e.mustRun(t, "analyze", "--resume", e.resumePath, "--jd-file", e.jdPath, "--label", label)
}

func TestAnalyze_Table(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "analyze", "--resume", env.resumePath, "--jd", sampleJD)

	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, "Match score:      57%")
	assert.Contains(t, out, "ATS score:        59%")
	assert.Contains(t, out, "Missing keywords: looking, skilled, kubernetes")
	assert.Contains(t, out, "Low ATS match. Resume needs optimization.")
	assert.Contains(t, out, "Saved audit ")
}

func TestAnalyze_JSON(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "analyze", "--resume", env.resumePath, "--jd-file", env.jdPath, "-o", "json")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Len(t, fields, 4)
	assert.EqualValues(t, 57, fields["matchScore"])
	assert.EqualValues(t, 59, fields["atsScore"])
	assert.Equal(t, []interface{}{"looking", "skilled", "kubernetes"}, fields["missingKeywords"])
	assert.Equal(t, "Low ATS match. Resume needs optimization.", fields["summary"])
}

func TestAnalyze_Detailed(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "analyze", "--resume", env.resumePath, "--jd-file", env.jdPath, "--detailed")

	assert.Contains(t, out, "Keyword overlap:  4/7")
	assert.Contains(t, out, "Matched:          python, developer, aws, docker")
	assert.Contains(t, out, "Saved as:")
}

func TestAnalyze_NoSave(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "analyze", "--resume", env.resumePath, "--jd-file", env.jdPath, "--no-save")
	assert.NotContains(t, out, "Saved audit")

	out = env.mustRun(t, "last")
	assert.Contains(t, out, "No audits yet")
}

func TestAnalyze_UsageErrors(t *testing.T) {
	env := newTestEnv(t)
	empty := filepath.Join(env.dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n\t "), 0644))

	_, err := env.run(t, "analyze", "--resume", empty, "--jd", sampleJD)
	assert.ErrorIs(t, err, document.ErrEmptyDocument)

	_, err = env.run(t, "analyze", "--resume", env.resumePath, "--jd", "   ")
	assert.ErrorIs(t, err, document.ErrEmptyDocument)

	_, err = env.run(t, "analyze", "--resume", env.resumePath)
	assert.Error(t, err, "a job description is required")

	_, err = env.run(t, "analyze", "--resume", env.resumePath, "--jd", sampleJD, "--jd-file", env.jdPath)
	assert.Error(t, err, "--jd and --jd-file are exclusive")

	_, err = env.run(t, "analyze", "--jd", sampleJD)
	assert.Error(t, err, "--resume is required")

	_, err = env.run(t, "analyze", "--resume", "-", "--jd-file", "-")
	assert.Error(t, err, "stdin can only be read once")

	_, err = env.run(t, "analyze", "--resume", filepath.Join(env.dir, "missing.pdf"), "--jd", sampleJD)
	assert.Error(t, err)
}

func TestHistoryShowLast(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, "Acme")
	env.analyze(t, "Globex")

	out := env.mustRun(t, "history")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Globex")

	var audits []database.Audit
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "history", "-o", "json")), &audits))
	require.Len(t, audits, 2)
	assert.Equal(t, "Globex", audits[0].DisplayName())

	out = env.mustRun(t, "history", "--tier", "strong")
	assert.Contains(t, out, "No audits found.")

	_, err := env.run(t, "history", "--tier", "excellent")
	assert.Error(t, err)

	_, err = env.run(t, "history", "--since", "7x")
	assert.Error(t, err)

	out = env.mustRun(t, "last")
	assert.Equal(t, "Match: 57% | ATS: 59%\n", out)

	out = env.mustRun(t, "show", "last")
	assert.Contains(t, out, "Label:            Globex")
	assert.Contains(t, out, "Match: 57% | ATS: 59%")

	var shown database.Audit
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "show", audits[1].ID[:8], "-o", "json")), &shown))
	assert.Equal(t, audits[1].ID, shown.ID)

	_, err = env.run(t, "show", "zzzzzzzz")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, "Acme Platform")
	env.analyze(t, "Globex")

	out := env.mustRun(t, "search", "acme")
	assert.Contains(t, out, "Found 1 audit(s) matching: acme")
	assert.Contains(t, out, "Acme Platform")

	out = env.mustRun(t, "search", "initech")
	assert.Contains(t, out, "No audits found matching: initech")

	var audits []database.Audit
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "search", "posting", "-o", "json")), &audits))
	assert.Len(t, audits, 2)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "stats")
	assert.Contains(t, out, "Total audits:           0")

	env.analyze(t, "Acme")
	env.analyze(t, "Globex")

	var stats database.Stats
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "stats", "-o", "json")), &stats))
	assert.Equal(t, 2, stats.TotalAudits)
	assert.Equal(t, 59, stats.BestATSScore)
	assert.Equal(t, 2, stats.ByTier["low"])

	out = env.mustRun(t, "stats", "--detailed", "--since", "7d")
	assert.Contains(t, out, "Best Matches")
	assert.Contains(t, out, "59%")
	assert.Contains(t, out, "Average ATS Score (Last 14 Days)")
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, "Acme")
	env.analyze(t, "Globex")

	out := env.mustRun(t, "export", "--format", "csv")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "Globex", records[1][1])
	assert.Equal(t, "59", records[1][5])
	assert.Equal(t, "looking;skilled;kubernetes", records[1][9])

	var rows []ExportRow
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "export", "--format", "json")), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[1].Label)

	_, err = env.run(t, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestDeleteAndPrune(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, "Acme")
	env.analyze(t, "Globex")
	env.analyze(t, "Initech")

	out := env.mustRun(t, "delete", "last")
	assert.Contains(t, out, "Deleted: Initech")

	out = env.mustRun(t, "last")
	assert.Equal(t, "Match: 57% | ATS: 59%\n", out)

	_, err := env.run(t, "delete", "no-such-audit")
	assert.Error(t, err)

	out = env.mustRun(t, "prune", "--keep", "1", "-o", "json")
	var result DeleteResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Deleted)

	out = env.mustRun(t, "prune", "--keep", "0")
	assert.Contains(t, out, "Deleted 1 audit(s)")

	_, err = env.run(t, "prune", "--keep", "-3")
	assert.Error(t, err)
}

func TestHistoryKeepLimit(t *testing.T) {
	env := newTestEnv(t)
	cfg := fmt.Sprintf("[database]\npath = %q\n\n[history]\nenabled = true\nkeep = 2\n", filepath.Join(env.dir, "atsmatch.db"))
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0644))

	for _, label := range []string{"one", "two", "three"} {
		env.analyze(t, label)
	}

	var audits []database.Audit
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "history", "-o", "json")), &audits))
	require.Len(t, audits, 2)
	assert.Equal(t, "three", audits[0].DisplayName())
	assert.Equal(t, "two", audits[1].DisplayName())
}

func TestKeywords(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "keywords", "--limit", "3", "Go engineer with Kubernetes and Go tooling")
	assert.Equal(t, " 1. engineer\n 2. kubernetes\n 3. tooling\n", out)

	var keywords []string
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "keywords", "--file", env.jdPath, "-o", "json")), &keywords))
	assert.Equal(t, []string{"looking", "python", "developer", "skilled", "aws", "docker", "kubernetes"}, keywords)

	_, err := env.run(t, "keywords")
	assert.ErrorIs(t, err, document.ErrEmptyDocument)

	_, err = env.run(t, "keywords", "--file", env.jdPath, "extra")
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "keywords", "--stopwords", "-o", "json")), &keywords))
	assert.Len(t, keywords, 18)
	assert.Contains(t, keywords, "experience")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	env := &testEnv{dir: dir, configPath: filepath.Join(dir, "nested", "config.toml")}

	out := env.mustRun(t, "config", "show")
	assert.Contains(t, out, "No config file found")

	out = env.mustRun(t, "config", "init")
	assert.Contains(t, out, "Created config file")

	loaded, err := config.Load(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().History, loaded.History)

	assert.DirExists(t, filepath.Join(dir, ".local", "share", "atsmatch"))

	out = env.mustRun(t, "config", "init")
	assert.Contains(t, out, "already exists")

	out = env.mustRun(t, "config", "show")
	assert.Contains(t, out, "[database]")

	out = env.mustRun(t, "config", "show", "--effective")
	assert.Contains(t, out, "# Effective config")
	assert.Contains(t, out, "max_bytes")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte("[logging]\nlevel = \"loud\"\n"), 0644))

	_, err := env.run(t, "history")
	assert.Error(t, err)

	// config commands still work with a broken file
	out := env.mustRun(t, "config", "show")
	assert.Contains(t, out, "loud")
}

func TestUnknownOutputFormat(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, "Acme")

	commands := [][]string{
		{"analyze", "--resume", env.resumePath, "--jd", sampleJD, "--no-save"},
		{"last"},
		{"delete", "last"},
		{"history"},
		{"keywords", "golang kubernetes"},
	}
	for _, args := range commands {
		out, err := env.run(t, append(args, "-o", "yaml")...)
		if assert.Error(t, err, args[0]) {
			assert.Contains(t, err.Error(), "unknown output format: yaml")
		}
		assert.Empty(t, out, args[0])
	}

	// nothing was deleted by the rejected command
	assert.Equal(t, "Match: 57% | ATS: 59%\n", env.mustRun(t, "last"))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	SetVersionInfo("1.2.3", "abc123", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	out := env.mustRun(t, "version")
	assert.Contains(t, out, "atsmatch 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"12h", 12 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"1m", 30 * 24 * time.Hour, false},
		{"d", 0, true},
		{"7x", 0, true},
		{"xd", 0, true},
		{"-1d", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDailyActivity(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	audits := []database.Audit{
		{ATSScore: 80, CreatedAt: now.Add(-time.Hour)},
		{ATSScore: 60, CreatedAt: now.Add(-2 * time.Hour)},
		{ATSScore: 40, CreatedAt: now.AddDate(0, 0, -2)},
		{ATSScore: 90, CreatedAt: now.AddDate(0, 0, -30)},
	}

	activity := dailyActivity(audits, now, 3)
	require.Len(t, activity, 3)

	assert.Equal(t, ActivityStat{Date: "2026-03-13", Count: 1, AvgATS: 40}, activity[0])
	assert.Equal(t, ActivityStat{Date: "2026-03-14", Count: 0}, activity[1])
	assert.Equal(t, ActivityStat{Date: "2026-03-15", Count: 2, AvgATS: 70}, activity[2])
}

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier string
		want string
	}{
		{"strong", ColorGreen},
		{"moderate", ColorYellow},
		{"low", ColorRed},
		{"insufficient", ColorGray},
	}

	for _, tt := range tests {
		if got := TierColor(analysis.Tier(tt.tier)); got != tt.want {
			t.Errorf("TierColor(%s) = %q, want %q", tt.tier, got, tt.want)
		}
	}

	term := NewTerminal(&bytes.Buffer{})
	assert.False(t, term.UseColor)
	assert.Equal(t, "plain", term.Color(ColorRed, "plain"))
}
