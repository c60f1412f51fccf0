package predictor

import (
	"container/list"
	"context"
	"sync"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/tools/disorder"
)

// Analysis is the disorder profile of one sequence.
type Analysis struct {
	Scores    []float64
	IDRs      []disorder.Interval
	Predictor string
	Reason    string // set when the predictor produced nothing
}

// Memo caches analyses by exact sequence text. Results are a pure function
// of the sequence, so entries never need invalidation; the LRU only bounds
// memory. Failed predictions are not cached, and neither are answers a
// Fallback took from its Secondary, so the Primary is retried next time.
type Memo struct {
	Threshold float64
	MinLength int

	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[string]*list.Element
}

type memoNode struct {
	key string
	val Analysis
}

func NewMemo(capacity int, threshold float64, minLength int) *Memo {
	if capacity <= 0 {
		capacity = 64
	}
	return &Memo{
		Threshold: threshold,
		MinLength: minLength,
		cap:       capacity,
		ll:        list.New(),
		m:         make(map[string]*list.Element, capacity),
	}
}

// Analyze returns the cached analysis for sequence or computes it with p.
func (m *Memo) Analyze(ctx context.Context, p Predictor, sequence string) Analysis {
	if a, ok := m.get(sequence); ok {
		return a
	}
	var (
		res      fetch.Result[[]float64]
		used     = p
		fellBack bool
	)
	if f, ok := p.(Fallback); ok {
		res, used, fellBack = f.Resolve(ctx, sequence)
	} else {
		res = p.Predict(ctx, sequence)
	}
	a := Analysis{Predictor: used.Name()}
	if !res.Ok() {
		a.Reason = res.Reason
		return a
	}
	a.Scores = res.Value
	a.IDRs = disorder.Segment(res.Value, m.Threshold, m.MinLength)
	if !fellBack {
		m.put(sequence, a)
	}
	return a
}

// Len reports the number of cached sequences.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ll.Len()
}

func (m *Memo) get(key string) (Analysis, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.m[key]; ok {
		m.ll.MoveToFront(e)
		return e.Value.(*memoNode).val, true
	}
	return Analysis{}, false
}

func (m *Memo) put(key string, val Analysis) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.m[key]; ok {
		e.Value.(*memoNode).val = val
		m.ll.MoveToFront(e)
		return
	}
	m.m[key] = m.ll.PushFront(&memoNode{key: key, val: val})
	if m.ll.Len() > m.cap {
		tail := m.ll.Back()
		m.ll.Remove(tail)
		delete(m.m, tail.Value.(*memoNode).key)
	}
}
