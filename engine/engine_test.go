package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/katalvlaran/simcluster/engine"
	"github.com/katalvlaran/simcluster/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() []record.Record {
	return []record.Record{
		record.New("A", 0, map[string]string{"description": "same text"}),
		record.New("B", 0, map[string]string{"description": "same text"}),
		record.New("C", 0, map[string]string{"description": "totally unrelated content here"}),
	}
}

func groupNames(groups [][]record.Record) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, r := range g {
			out[i] = append(out[i], r.Name)
		}
	}
	return out
}

func run(t *testing.T, req engine.Request) ([]engine.Progress, engine.Message) {
	t.Helper()
	return engine.Collect(engine.New().Run(context.Background(), req))
}

func TestRun_EmptyInput(t *testing.T) {
	progress, last := run(t, engine.Request{Threshold: 0.5})

	assert.Empty(t, progress)
	require.Equal(t, engine.TypeResult, last.Type)
	assert.Empty(t, last.Groups)

	b, err := json.Marshal(last)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"result","data":[]}`, string(b))
}

func TestRun_DuplicateDescriptions(t *testing.T) {
	for _, method := range []string{"levenshtein", "no-such-metric", ""} {
		t.Run(fmt.Sprintf("method=%q", method), func(t *testing.T) {
			progress, last := run(t, engine.Request{
				Threshold:  0.99,
				Characters: scenario(),
				Method:     method,
				Fields:     []string{"description"},
			})

			require.Equal(t, engine.TypeResult, last.Type, "err: %v", last.Err)
			assert.Equal(t, [][]string{{"A", "B"}, {"C"}}, groupNames(last.Groups))
			assert.Equal(t, []engine.Progress{
				{Percent: 33, Run: 2, TotalRuns: 6},
				{Percent: 67, Run: 4, TotalRuns: 6},
				{Percent: 100, Run: 6, TotalRuns: 6},
			}, progress)
		})
	}
}

// TestRun_ProgressReachesHundred: percentages only grow, never repeat, and end at 100.
func TestRun_ProgressReachesHundred(t *testing.T) {
	for _, n := range []int{2, 5, 17, 40} {
		recs := make([]record.Record, n)
		for i := range recs {
			recs[i] = record.New(fmt.Sprintf("r%d", i), 0, map[string]string{"description": fmt.Sprintf("text %d", i%4)})
		}
		progress, last := run(t, engine.Request{Threshold: 0.9, Characters: recs, Fields: []string{"description"}})
		require.Equal(t, engine.TypeResult, last.Type)
		require.NotEmpty(t, progress)

		for i := 1; i < len(progress); i++ {
			assert.Greater(t, progress[i].Percent, progress[i-1].Percent)
		}
		final := progress[len(progress)-1]
		assert.Equal(t, 100, final.Percent)
		assert.Equal(t, n*(n-1), final.TotalRuns)
		assert.Equal(t, final.TotalRuns, final.Run)

		total := 0
		for _, g := range last.Groups {
			total += len(g)
		}
		assert.Equal(t, n, total)
	}
}

func TestRun_SentenceModes(t *testing.T) {
	recs := []record.Record{
		record.New("knight", 0, map[string]string{"description": "A brave knight. Loves horses! Hates dragons."}),
		record.New("squire", 0, map[string]string{"description": "A brave knight. Loves horses! Fears the dark."}),
		record.New("witch", 0, map[string]string{"description": "Brews potions. Lives alone?"}),
		record.New("hermit", 0, map[string]string{"description": "Brews potions. Lives alone? Reads stars."}),
		record.New("blank", 0, nil),
	}
	base := engine.Request{Characters: recs, Method: "Sentence", Fields: []string{"description"}}

	req := base
	req.Threshold = 0.4
	_, last := run(t, req)
	require.Equal(t, engine.TypeResult, last.Type, "err: %v", last.Err)
	assert.Equal(t, [][]string{{"knight", "squire"}, {"witch", "hermit"}, {"blank"}}, groupNames(last.Groups))

	req = base
	req.Mode = "groups"
	req.Count = 3
	_, last = run(t, req)
	require.Equal(t, engine.TypeResult, last.Type, "err: %v", last.Err)
	assert.Equal(t, [][]string{{"knight", "squire"}, {"witch", "hermit"}, {"blank"}}, groupNames(last.Groups))

	req = base
	req.Mode = "even"
	req.Count = 2
	_, last = run(t, req)
	require.Equal(t, engine.TypeResult, last.Type, "err: %v", last.Err)
	require.Len(t, last.Groups, 2)
	assert.ElementsMatch(t, []int{2, 3}, []int{len(last.Groups[0]), len(last.Groups[1])})

	req = base
	req.Mode = "representatives"
	req.Count = 2
	_, last = run(t, req)
	require.Equal(t, engine.TypeResult, last.Type, "err: %v", last.Err)
	require.Len(t, last.Groups, 2)
	for _, g := range last.Groups {
		assert.Len(t, g, 1)
	}
}

func TestRun_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  engine.Request
		want error
	}{
		{"threshold above one", engine.Request{Threshold: 1.5}, engine.ErrBadThreshold},
		{"negative threshold", engine.Request{Threshold: -0.1}, engine.ErrBadThreshold},
		{"unknown mode", engine.Request{Mode: "clusterize"}, engine.ErrUnknownMode},
		{"missing count", engine.Request{Mode: "even"}, engine.ErrBadCount},
		{"negative depth", engine.Request{Mode: "groups", Count: 2, SearchDepth: -1}, engine.ErrBadDepth},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Characters = scenario()
			progress, last := run(t, tc.req)
			assert.Empty(t, progress)
			require.Equal(t, engine.TypeFailed, last.Type)
			assert.ErrorIs(t, last.Err, tc.want)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var terminals int
	var last engine.Message
	for m := range engine.New().Run(ctx, engine.Request{Threshold: 0.5, Characters: scenario()}) {
		if m.Terminal() {
			terminals++
			last = m
		}
	}
	assert.Equal(t, 1, terminals)
	assert.Equal(t, engine.TypeFailed, last.Type)
	assert.True(t, errors.Is(last.Err, context.Canceled))
}

func TestRun_AssignsRequestID(t *testing.T) {
	_, last := run(t, engine.Request{})
	assert.Len(t, last.RequestID, 36)

	_, last = run(t, engine.Request{ID: "job-7"})
	assert.Equal(t, "job-7", last.RequestID)
}

func TestParseRequest(t *testing.T) {
	req, err := engine.ParseRequest([]byte(`{"threshold":0.8,"method":"sentence","fields":["name"],"characters":[{"name":"A"},{"data":{"name":"B"}}],"mode":"even","count":2}`))
	require.NoError(t, err)
	assert.Equal(t, 0.8, req.Threshold)
	assert.Equal(t, "sentence", req.Method)
	assert.Equal(t, []string{"name"}, req.Fields)
	assert.Equal(t, "even", req.Mode)
	assert.Equal(t, 2, req.Count)
	require.Len(t, req.Characters, 2)
	assert.Equal(t, "B", req.Characters[1].Name)

	req, err = engine.ParseRequest([]byte(` [{"name":"X"}]`))
	require.NoError(t, err)
	require.Len(t, req.Characters, 1)
	assert.Equal(t, "X", req.Characters[0].Name)

	for _, bad := range []string{"", "42", `{"threshold":"high"}`} {
		_, err = engine.ParseRequest([]byte(bad))
		assert.ErrorIs(t, err, engine.ErrBadRequest, bad)
	}
}

func TestMessageJSON(t *testing.T) {
	var rec record.Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","avatar":"a.png","modified":5}`), &rec))

	tests := []struct {
		name string
		msg  engine.Message
		want string
	}{
		{"progress", engine.Message{Type: engine.TypeProgress, Progress: engine.Progress{Percent: 50, Run: 1, TotalRuns: 2}},
			`{"type":"progress","data":{"percent":50,"run":1,"totalRuns":2}}`},
		{"result echoes records", engine.Message{Type: engine.TypeResult, Groups: [][]record.Record{{rec}}},
			`{"type":"result","data":[[{"name":"A","avatar":"a.png","modified":5}]]}`},
		{"failed", engine.Message{Type: engine.TypeFailed, Err: errors.New("boom")},
			`{"type":"failed","data":{"error":"boom"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}

	_, err := json.Marshal(engine.Message{Type: "bogus"})
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := engine.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, engine.ModeSimilar, m)
	assert.False(t, m.Counted())

	m, err = engine.ParseMode(" Even ")
	require.NoError(t, err)
	assert.Equal(t, engine.ModeEven, m)
	assert.True(t, m.Counted())
}
