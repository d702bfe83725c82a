package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorderExposesCounters(t *testing.T) {
	r := New(false)
	r.RecordTick(0.001)
	r.RecordTree("enemy", bt.Complete)
	r.RecordTree("enemy", bt.Complete)
	r.RecordTree("tower", bt.Waiting)
	r.RecordPathLookup("weighted", tilemap.Hit)
	r.RecordPathLookup("flat", tilemap.Unreachable)
	r.SetAgents("enemy", 3)
	r.SetWave(2)
	r.SetBaseHealth(17)
	r.RecordReload(nil)
	r.RecordReload(errors.New("boom"))

	out := scrape(t, r)
	assert.Contains(t, out, "tst_ticks_total 1")
	assert.Contains(t, out, `tst_tree_outcomes_total{agent="enemy",state="Complete"} 2`)
	assert.Contains(t, out, `tst_tree_outcomes_total{agent="tower",state="Waiting"} 1`)
	assert.Contains(t, out, `tst_path_lookups_total{cache="weighted",outcome="hit"} 1`)
	assert.Contains(t, out, `tst_path_lookups_total{cache="flat",outcome="unreachable"} 1`)
	assert.Contains(t, out, `tst_agents{agent="enemy"} 3`)
	assert.Contains(t, out, "tst_wave 2")
	assert.Contains(t, out, "tst_base_health 17")
	assert.Contains(t, out, `tst_definition_reloads_total{result="error"} 1`)
	assert.NotContains(t, out, "go_goroutines")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordTick(1)
		r.RecordTree("enemy", bt.Failed)
		r.RecordPathLookup("flat", tilemap.Miss)
		r.SetAgents("tower", 1)
		r.SetWave(1)
		r.SetBaseHealth(1)
		r.RecordReload(nil)
	})
	assert.Nil(t, r.Registry())
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}
