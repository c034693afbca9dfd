package plot

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
)

// Series is one committed plot: sampled points plus their labels
type Series struct {
	X, Y   []float64
	Labels map[string]string
}

// Label keys carried by every Series
const (
	LabelFunction = "function"
	LabelDomain   = "domain"
	LabelSteps    = "steps"
	LabelTitle    = "label"
)

// Surface receives committed series and reports when it has been closed
// A closed surface ends the live session the same way a Kill event does
type Surface interface {
	Update(Series) error
	Closed() <-chan struct{}
}

// --- Memory surface ---

// MemorySurface keeps the most recent series
type MemorySurface struct {
	mu      sync.Mutex
	last    Series
	updates int
	closed  chan struct{}
	once    sync.Once
}

// NewMemorySurface creates an empty surface
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{closed: make(chan struct{})}
}

// Update stores s
func (m *MemorySurface) Update(s Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = s
	m.updates++
	return nil
}

// Last returns the latest series and whether any was received
func (m *MemorySurface) Last() (Series, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.updates > 0
}

// Updates counts received series
func (m *MemorySurface) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

func (m *MemorySurface) Closed() <-chan struct{} { return m.closed }

// Close signals Closed; repeated calls are no-ops
func (m *MemorySurface) Close() error {
	m.once.Do(func() { close(m.closed) })
	return nil
}

// --- JSON lines surface ---

// JSONSurface writes one JSON document per update, newline separated:
//
//	{"seq":1,"time":"...","labels":{"function":"sin(x)",...},"x":[...],"y":[...]}
//
// Non-finite samples are written as null
type JSONSurface struct {
	mu     sync.Mutex
	w      io.Writer
	seq    int
	closed chan struct{}
	once   sync.Once
}

// NewJSONSurface writes to w; Close closes w when it is an io.Closer
func NewJSONSurface(w io.Writer) *JSONSurface {
	return &JSONSurface{w: w, closed: make(chan struct{})}
}

// Update appends s as one JSON line
func (j *JSONSurface) Update(s Series) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	select {
	case <-j.closed:
		return errors.New("surface closed")
	default:
	}

	j.seq++
	doc, err := encodeSeries(j.seq, time.Now(), s)
	if err != nil {
		return err
	}
	doc = append(doc, '\n')
	if _, err := j.w.Write(doc); err != nil {
		return errors.Wrap(err, "write series")
	}
	return nil
}

func (j *JSONSurface) Closed() <-chan struct{} { return j.closed }

// Close signals Closed and releases the writer
func (j *JSONSurface) Close() error {
	var err error
	j.once.Do(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		close(j.closed)
		if c, ok := j.w.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

func encodeSeries(seq int, at time.Time, s Series) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("seq", seq)
	set("time", at.UTC().Format(time.RFC3339Nano))
	for _, k := range []string{LabelFunction, LabelDomain, LabelSteps, LabelTitle} {
		set("labels."+k, s.Labels[k])
	}
	for k, v := range s.Labels {
		switch k {
		case LabelFunction, LabelDomain, LabelSteps, LabelTitle:
		default:
			set("labels."+k, v)
		}
	}
	set("x", finiteOrNull(s.X))
	set("y", finiteOrNull(s.Y))
	if err != nil {
		return nil, errors.Wrap(err, "encode series")
	}
	return doc, nil
}

func finiteOrNull(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v
	}
	return out
}
