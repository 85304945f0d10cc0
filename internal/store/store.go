// Package store holds the graph of a pipeline while it is drawn. It implements the
// github.com/dominikbraun/graph storage contract for graphs whose vertices are step names.
package store

import (
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

type link struct {
	from, to string
}

// StepStore keeps pipeline steps and the links between them. It is safe for concurrent use,
// pipeline options register steps from the goroutine building the pipeline while the drawer reads them.
type StepStore struct {
	mu    sync.RWMutex
	steps map[string]*graph.VertexProperties
	links map[link]graph.Edge[string]
}

// NewStepStore returns an empty store.
func NewStepStore() *StepStore {
	return &StepStore{
		steps: make(map[string]*graph.VertexProperties),
		links: make(map[link]graph.Edge[string]),
	}
}

// AddVertex registers a step. The value is the step name itself.
func (s *StepStore) AddVertex(name, _ string, properties graph.VertexProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.steps[name]; ok {
		return graph.ErrVertexAlreadyExists
	}
	if properties.Attributes == nil {
		properties.Attributes = make(map[string]string)
	}
	s.steps[name] = &properties

	return nil
}

// Vertex returns the step properties. Their attributes map is shared with the store,
// so drawers can label a step in place.
func (s *StepStore) Vertex(name string) (string, graph.VertexProperties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties, ok := s.steps[name]
	if !ok {
		return "", graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return name, *properties, nil
}

func (s *StepStore) RemoveVertex(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.steps[name]; !ok {
		return graph.ErrVertexNotFound
	}
	for l := range s.links {
		if l.from == name || l.to == name {
			return graph.ErrVertexHasEdges
		}
	}
	delete(s.steps, name)

	return nil
}

// ListVertices returns the step names sorted.
func (s *StepStore) ListVertices() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.steps))
	for name := range s.steps {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (s *StepStore) VertexCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.steps), nil
}

func (s *StepStore) AddEdge(from, to string, edge graph.Edge[string]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links[link{from: from, to: to}] = edge

	return nil
}

func (s *StepStore) UpdateEdge(from, to string, edge graph.Edge[string]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := link{from: from, to: to}
	if _, ok := s.links[key]; !ok {
		return graph.ErrEdgeNotFound
	}
	s.links[key] = edge

	return nil
}

func (s *StepStore) RemoveEdge(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.links, link{from: from, to: to})

	return nil
}

func (s *StepStore) Edge(from, to string) (graph.Edge[string], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.links[link{from: from, to: to}]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

// ListEdges returns the links sorted by source then target.
func (s *StepStore) ListEdges() ([]graph.Edge[string], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]graph.Edge[string], 0, len(s.links))
	for _, edge := range s.links {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}

		return edges[i].Target < edges[j].Target
	})

	return edges, nil
}

// CreatesCycle reports whether a link from source to target would close a loop,
// that is whether source is already reachable from target.
func (s *StepStore) CreatesCycle(source, target string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range []string{source, target} {
		if _, ok := s.steps[name]; !ok {
			return false, errors.Wrapf(graph.ErrVertexNotFound, "step %s", name)
		}
	}

	children := make(map[string][]string, len(s.steps))
	for l := range s.links {
		children[l.from] = append(children[l.from], l.to)
	}

	queue := []string{target}
	seen := map[string]struct{}{target: {}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == source {
			return true, nil
		}
		for _, child := range children[current] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			queue = append(queue, child)
		}
	}

	return false, nil
}

var _ graph.Store[string, string] = (*StepStore)(nil)
