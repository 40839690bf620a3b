package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simcluster/config"
)

const scenarioJSON = `[
	{"name": "A", "description": "same text"},
	{"name": "B", "description": "same text"},
	{"name": "C", "description": "totally unrelated content here"}
]`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()

	return out.String(), err
}

func TestSimilar_HidesSingletons(t *testing.T) {
	in := writeFile(t, "chars.json", scenarioJSON)
	args := []string{"similar", "-m", "levenshtein", "-f", "description", "-t", "0.99", in}

	out, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\n", out)

	out, err = execute(t, "", append(args, "--all")...)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\nGroup 2 (1)\n  • C\n", out)
}

func TestSimilar_EmptyStates(t *testing.T) {
	out, err := execute(t, "[]", "similar")
	require.NoError(t, err)
	assert.Equal(t, "No characters to compare.\n", out)

	out, err = execute(t, `[{"name":"x","description":"alpha"},{"name":"y","description":"omega"}]`,
		"similar", "-f", "description", "-t", "0.9")
	require.NoError(t, err)
	assert.Equal(t, "No similar characters found.\n", out)
}

func TestRun_StreamsJSONLines(t *testing.T) {
	req := writeFile(t, "req.json", `{"threshold":0.99,"method":"levenshtein","fields":["description"],"characters":`+scenarioJSON+`}`)

	out, err := execute(t, "", "run", req)
	require.NoError(t, err)

	var (
		types []string
		last  []byte
	)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var head struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &head))
		types = append(types, head.Type)
		last = append(last[:0], sc.Bytes()...)
	}
	assert.Equal(t, []string{"progress", "progress", "progress", "result"}, types)

	var result struct {
		Data [][]map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(last, &result))
	require.Len(t, result.Data, 2)
	assert.Equal(t, "A", result.Data[0][0]["name"])
	assert.Equal(t, "B", result.Data[0][1]["name"])
	assert.Equal(t, "C", result.Data[1][0]["name"])
}

func TestRun_FailedRequest(t *testing.T) {
	out, err := execute(t, `{"threshold":0.5,"mode":"sideways","characters":[]}`, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, out, `"type":"failed"`)
}

func TestGroupCommands(t *testing.T) {
	in := writeFile(t, "chars.json", scenarioJSON)
	base := []string{"-m", "levenshtein", "-f", "description", in}

	out, err := execute(t, "", append([]string{"groups", "-k", "2"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\nGroup 2 (1)\n  • C\n", out)

	out, err = execute(t, "", append([]string{"even", "-k", "2"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\nGroup 2 (1)\n  • C\n", out)

	out, err = execute(t, "", append([]string{"representatives", "-k", "2", "--json"}, base...)...)
	require.NoError(t, err)
	var msg struct {
		Type string              `json:"type"`
		Data [][]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &msg))
	assert.Equal(t, "result", msg.Type)
	assert.Len(t, msg.Data, 2)
}

func TestMultipleInputs(t *testing.T) {
	a := writeFile(t, "a.json", scenarioJSON)
	b := writeFile(t, "b.json", `[]`)

	out, err := execute(t, "", "similar", "-m", "levenshtein", "-f", "description", "-t", "0.99", "-j", "2", a, b)
	require.NoError(t, err)
	assert.Equal(t, "a.json\nGroup 1 (2)\n  • A\n  • B\nb.json\nNo characters to compare.\n", out)

	_, err = execute(t, "", "similar", "-", "-")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "method: levenshtein\nfields: [description]\nthreshold: 0.99\nlog:\n  pretty: false\n")
	in := writeFile(t, "chars.json", scenarioJSON)

	out, err := execute(t, "", "similar", "--config", cfg, in)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\n", out)

	bad := writeFile(t, "bad.yaml", "threshold: 3\n")
	_, err = execute(t, "", "similar", "--config", bad, in)
	assert.Error(t, err)
}

func TestRequestObject_ThresholdFallback(t *testing.T) {
	obj := `{"method":"levenshtein","fields":["description"],"characters":` + scenarioJSON + `}`
	in := writeFile(t, "request.json", obj)

	out, err := execute(t, "", "similar", "-t", "0.9", in)
	require.NoError(t, err)
	assert.Equal(t, "Group 1 (2)\n  • A\n  • B\n", out)

	req, err := readRequest(strings.NewReader(obj), "-", config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0.95, req.Threshold)
	assert.Equal(t, "levenshtein", req.Method)

	req, err = readRequest(strings.NewReader(`{"threshold":0,"characters":[]}`), "-", config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0.0, req.Threshold)

	req, err = readRequest(strings.NewReader(`{"threshold":0.3,"characters":[]}`), "-", config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0.3, req.Threshold)
}
