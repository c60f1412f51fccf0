package dashboard

import (
	"container/list"
	"crypto/rand"
	"encoding/hex"
	"slices"
	"sync"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/api/jaspar"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
)

// Session is everything one browser has selected so far. Handlers hold mu
// while reading or changing it.
type Session struct {
	ID string

	History    []string
	Protein    fetch.Result[uniprot.Record]
	CurrentID  string
	Organism   codon.Organism
	Start, End int
	Motifs     fetch.Result[[]jaspar.Motif]
	Constructs []construct.Construct

	// Message is shown once on the next page render.
	Message string

	mu sync.Mutex
}

// NewSession returns a session with the initial range 1..100.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Organism: codon.DefaultOrganism,
		Start:    1,
		End:      100,
	}
}

// AddHistory appends accession unless it is already present.
func (s *Session) AddHistory(accession string) {
	if !slices.Contains(s.History, accession) {
		s.History = append(s.History, accession)
	}
}

// RecentHistory returns the last n accessions, oldest first.
func (s *Session) RecentHistory(n int) []string {
	if n <= 0 || len(s.History) <= n {
		return slices.Clone(s.History)
	}
	return slices.Clone(s.History[len(s.History)-n:])
}

// SetRange clamps start..end to the loaded protein.
func (s *Session) SetRange(start, end int) {
	s.Start, s.End = construct.Clamp(len(s.Protein.Value.Sequence), start, end)
}

// TakeMessage returns and clears the pending message.
func (s *Session) TakeMessage() string {
	m := s.Message
	s.Message = ""
	return m
}

// Store keeps sessions in memory, keyed by cookie value. It holds at most
// capacity sessions and drops the least recently used one when full.
type Store struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	sessions map[string]*list.Element
}

// DefaultMaxSessions bounds a Store created with a non-positive capacity.
const DefaultMaxSessions = 1000

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultMaxSessions
	}
	return &Store{
		capacity: capacity,
		ll:       list.New(),
		sessions: make(map[string]*list.Element),
	}
}

// Get returns the session for id, if any, and marks it as recently used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	st.ll.MoveToFront(e)
	return e.Value.(*Session), true
}

// Create registers a fresh session under a random id, evicting the least
// recently used session if the store is full.
func (st *Store) Create() (*Session, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	s := NewSession(hex.EncodeToString(buf))

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = st.ll.PushFront(s)
	for st.ll.Len() > st.capacity {
		tail := st.ll.Back()
		st.ll.Remove(tail)
		delete(st.sessions, tail.Value.(*Session).ID)
	}
	return s, nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.ll.Len()
}
