package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type closeRecorder struct {
	bytes.Buffer
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestJSONSurfaceWritesLines(t *testing.T) {
	out := &closeRecorder{}
	s := NewJSONSurface(out)

	series := Series{
		X:      []float64{0, 1, 2},
		Y:      []float64{1, math.Inf(1), 4},
		Labels: map[string]string{LabelFunction: "1/x", LabelDomain: "0, 2", LabelSteps: "3"},
	}
	require.NoError(t, s.Update(series))
	require.NoError(t, s.Update(series))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	doc := lines[1]
	require.True(t, gjson.Valid(doc), doc)
	assert.Equal(t, int64(2), gjson.Get(doc, "seq").Int())
	assert.Equal(t, "1/x", gjson.Get(doc, "labels.function").String())
	assert.Equal(t, "", gjson.Get(doc, "labels.label").String())
	assert.True(t, gjson.Get(doc, "labels.label").Exists())
	assert.Equal(t, int64(3), gjson.Get(doc, "x.#").Int())
	assert.Equal(t, 2.0, gjson.Get(doc, "x.2").Float())
	assert.Equal(t, gjson.Null, gjson.Get(doc, "y.1").Type)
	assert.Equal(t, 4.0, gjson.Get(doc, "y.2").Float())
	assert.NotEmpty(t, gjson.Get(doc, "time").String())
}

func TestJSONSurfaceClose(t *testing.T) {
	out := &closeRecorder{}
	s := NewJSONSurface(out)

	select {
	case <-s.Closed():
		t.Fatal("closed before Close")
	default:
	}

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, out.closed)

	select {
	case <-s.Closed():
	default:
		t.Fatal("Closed not signalled")
	}
	assert.Error(t, s.Update(Series{}))
}

func TestMemorySurface(t *testing.T) {
	m := NewMemorySurface()
	_, ok := m.Last()
	assert.False(t, ok)

	require.NoError(t, m.Update(Series{X: []float64{1}, Y: []float64{2}}))
	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, []float64{2}, last.Y)
	assert.Equal(t, 1, m.Updates())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	_, open := <-m.Closed()
	assert.False(t, open)
}
