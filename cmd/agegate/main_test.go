package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straja-ai/agegate/internal/analysis"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVideoIDCommand(t *testing.T) {
	out, err := run(t, "videoid", "https://www.youtube.com/watch?v=NkZFnpDhdCk&list=PLabc")
	require.NoError(t, err)
	assert.Equal(t, "video_id=NkZFnpDhdCk\nplaylist_id=PLabc\n", out)

	_, err = run(t, "videoid", "https://example.com/")
	assert.Error(t, err)
}

func TestEvalLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.csv")
	require.NoError(t, os.WriteFile(path, []byte("Actual Label,Predicted Label\nSafe,Safe\nRestricted,Restricted\nRestricted,Safe\n"), 0o600))

	out, err := run(t, "eval", "--labels", path)
	require.NoError(t, err)
	assert.Contains(t, out, "weighted avg")

	_, err = run(t, "eval")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	export := filepath.Join(dir, "transcript.txt")
	body := `{"metadata":{"video_id":"abcdefghijk"},"transcript":[{"start":0,"text":"a murder"},{"start":61,"text":"then calm"}]}`
	require.NoError(t, os.WriteFile(input, []byte(body), 0o600))

	out, err := run(t, "analyze", input, "--config", filepath.Join(dir, "none.yaml"), "--export-transcript", export, "-q")
	require.NoError(t, err)

	var rep analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Verdict.Restricted)

	exported, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(exported), "[00:00] a murder\n\n[01:01] then calm"))
}
