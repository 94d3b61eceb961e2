package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/episim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		States: []sim.State{
			{0.99, 0.01, 0},
			{0.95, 0.03, 0.02},
			{0.67, 0.005, 0.325},
		},
		Controls: []sim.Control{{0}, {0.6}, {0}},
		Times:    []float64{0, 10, 20},
		Metrics:  map[string]float64{"peak_infected": 0.03, "attack_rate": 0.32},
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Model:      "sir",
		Duration:   20,
		Integrator: "rk45",
		Controller: "lockdown",
		Params:     map[string]float64{"beta": 1.2, "gamma": 1.0},
		Labels:     []string{"S", "I", "R"},
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(testMeta(), testResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "sir_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)

	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "sir", meta.Model)
	assert.Equal(t, []string{"S", "I", "R"}, meta.Labels)
	assert.Equal(t, 1.2, meta.Params["beta"])
	assert.Equal(t, 0.03, meta.Metrics["peak_infected"])
	assert.False(t, meta.Timestamp.IsZero())
}

func TestLoadTrajectory(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(testMeta(), testResult())
	require.NoError(t, err)

	states, times, err := st.LoadTrajectory(runID)
	require.NoError(t, err)

	require.Len(t, states, 3)
	require.Len(t, times, 3)

	assert.Equal(t, []float64{0, 10, 20}, times)
	// Control columns must not leak into the state.
	assert.Len(t, states[0], 3)
	assert.InDelta(t, 0.99, states[0][0], 1e-6)
	assert.InDelta(t, 0.325, states[2][2], 1e-6)
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save(testMeta(), testResult())
	require.NoError(t, err)

	meta2 := testMeta()
	meta2.Model = "seir"
	meta2.Labels = []string{"S", "E", "I", "R"}
	_, err = st.Save(meta2, &sim.Result{
		States: []sim.State{{0.99, 0, 0.01, 0}},
		Times:  []float64{0},
	})
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/episim-test")

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("sir_12345")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(testMeta(), testResult())
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, st.ExportJSON(&buf, runID))

	var doc struct {
		ID     string      `json:"id"`
		Model  string      `json:"model"`
		Times  []float64   `json:"times"`
		States [][]float64 `json:"states"`
	}
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &doc))

	assert.Equal(t, runID, doc.ID)
	assert.Equal(t, "sir", doc.Model)
	assert.Len(t, doc.Times, 3)
	assert.Len(t, doc.States, 3)
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(testMeta(), testResult())
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, st.ExportCSV(&buf, runID))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,S,I,R,u", lines[0])
}
