// Package hypergraph implements the minimal typed hypergraph engine that
// the model transformation is built on: identified, labeled concepts
// related by class/instance, part/whole, and named-fact edges.
//
// No module in the retrieval pack implements this exact shape (see
// DESIGN.md), so this is a from-scratch, dependency-free store rather
// than an adapter over a third-party graph engine. Class, instance and
// relation-kind distinctions are encoded purely by which edges a concept
// participates in, never by a Go type tag — a concept that is never
// related to anything is just a label with a name.
package hypergraph

import (
	"fmt"
	"sort"
	"sync"
)

// Direction selects which way a traversal walks the class/instance
// hierarchy: FORWARD moves toward classes (superclasses, the classes
// of an instance); INVERSE moves toward instances (subclasses, the
// instances of a class). InterfacesOf uses FORWARD for owner ->
// interfaces and INVERSE for interface -> owners.
type Direction int

const (
	FORWARD Direction = iota
	INVERSE
)

// Base relation kinds are primitives the engine itself provides, the
// way a real external hypergraph engine would predefine subclass-of,
// instance-of, is-a, part-of and has-interface before any domain
// vocabulary is loaded on top of it.
const (
	BaseSubclassOf       = "base:subclass-of"
	BaseInstanceOf       = "base:instance-of"
	BaseIsA              = "base:is-a"
	BasePartOf           = "base:part-of"
	BaseHasInterface     = "base:has-interface"
	BaseHasA             = "base:has-a"
	BaseConnectedToIface = "base:connected-to-interface"
)

// Fact is a labeled, identified relation among participant concepts.
// Every non-structural edge (has-a sub-relations, interface
// connections, domain-specific edges) and every is-a pair is represented
// as a Fact; the structural relations (subclass-of, instance-of,
// part-of, has-interface) are tracked as plain adjacency for traversal
// speed but are conceptually the same kind of object.
type Fact struct {
	UID      string
	Label    string
	Relation string
	From     []string
	To       []string
}

// Store is an in-memory hypergraph. All operations are synchronous; the
// mutex exists only to make generated-identifier allocation safe if a
// caller accidentally shares a Store across goroutines, not to offer
// any concurrency guarantee (see spec §5 — callers must serialize
// Import/Export on a shared Store themselves).
type Store struct {
	mu sync.Mutex

	labels map[string]string

	subclassOf map[string]map[string]bool // child -> parents
	instanceOf map[string]map[string]bool // instance -> classes
	partOf     map[string]map[string]bool // part -> wholes
	hasIface   map[string]map[string]bool // owner -> interfaces

	facts      map[string]*Fact
	factsByRel map[string][]string    // relation -> fact uids, insertion order (UID order after Unmarshal)
	isaIndex   map[string]map[string]string // subject -> object -> fact uid, for is-a idempotence

	seq int
}

// New creates an empty hypergraph. It does not install any domain
// meta-model; callers use metamodel.Bootstrap for that.
func New() *Store {
	return &Store{
		labels:     make(map[string]string),
		subclassOf: make(map[string]map[string]bool),
		instanceOf: make(map[string]map[string]bool),
		partOf:     make(map[string]map[string]bool),
		hasIface:   make(map[string]map[string]bool),
		facts:      make(map[string]*Fact),
		factsByRel: make(map[string][]string),
		isaIndex:   make(map[string]map[string]string),
	}
}

func (s *Store) nextUID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s#%d", prefix, s.seq)
}

func addEdge(set map[string]map[string]bool, from, to string) bool {
	targets, ok := set[from]
	if !ok {
		targets = make(map[string]bool)
		set[from] = targets
	}
	if targets[to] {
		return false
	}
	targets[to] = true
	return true
}

// Exists reports whether a concept with the given identifier has
// already been created.
func (s *Store) Exists(uid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.labels[uid]
	return ok
}

// Get returns the label of uid and whether it exists.
func (s *Store) Get(uid string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	label, ok := s.labels[uid]
	return label, ok
}

// UpdateLabel overwrites the label of an existing concept or fact. It
// is a no-op if uid does not exist.
func (s *Store) UpdateLabel(uid, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.facts[uid]; ok {
		f.Label = label
		return
	}
	if _, ok := s.labels[uid]; ok {
		s.labels[uid] = label
	}
}

// Create ensures a bare concept exists with the given identifier and
// label. It is a no-op — including not relabeling — if the concept
// already exists, per the idempotent-lookup lifecycle.
func (s *Store) Create(uid, label string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.labels[uid]; !ok {
		s.labels[uid] = label
	}
	return uid
}

func (s *Store) createWithSupers(uid, label string, supers []string) string {
	s.mu.Lock()
	if _, ok := s.labels[uid]; !ok {
		s.labels[uid] = label
	}
	for _, sup := range supers {
		addEdge(s.subclassOf, uid, sup)
	}
	s.mu.Unlock()
	return uid
}

// CreateComponent creates uid as a component-class concept, subclass-of
// every given super. No-op-safe: repeated calls only add missing
// subclass-of edges.
func (s *Store) CreateComponent(uid, label string, supers []string) string {
	return s.createWithSupers(uid, label, supers)
}

// CreateInterface creates uid as an interface-class concept,
// subclass-of every given super.
func (s *Store) CreateInterface(uid, label string, supers []string) string {
	return s.createWithSupers(uid, label, supers)
}

// CreateSubclassOf creates uid as a subclass of every given super,
// regardless of what kind of concept it represents.
func (s *Store) CreateSubclassOf(uid string, supers []string, label string) string {
	return s.createWithSupers(uid, label, supers)
}

// IsA records is-a facts from every a to every b, orthogonal to the
// subclass-of hierarchy (e.g. domain membership alongside a type
// chain). Unlike FactFrom, repeated calls with the same pair reuse the
// existing fact rather than creating a duplicate, since is-a pairs are
// intrinsic to a concept (not independently named edges) and Import
// must remain idempotent under re-import.
func (s *Store) IsA(as, bs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range as {
		for _, b := range bs {
			targets, ok := s.isaIndex[a]
			if !ok {
				targets = make(map[string]string)
				s.isaIndex[a] = targets
			}
			if _, exists := targets[b]; exists {
				continue
			}
			uid := s.recordFact("", BaseIsA, []string{a}, []string{b})
			targets[b] = uid
		}
	}
}

// InstantiateFrom creates one fresh instance concept that is
// instance-of every given class.
func (s *Store) InstantiateFrom(classes []string, label string) []string {
	s.mu.Lock()
	uid := s.nextUID("Instance")
	s.labels[uid] = label
	for _, c := range classes {
		addEdge(s.instanceOf, uid, c)
	}
	s.mu.Unlock()
	return []string{uid}
}

// InstantiateComponent creates a fresh component instance of the given
// classes.
func (s *Store) InstantiateComponent(classes []string, label string) []string {
	return s.InstantiateFrom(classes, label)
}

// InstantiateInterfaceFor creates a fresh interface instance of class,
// attached to owner via has-interface.
func (s *Store) InstantiateInterfaceFor(owner, class, label string) []string {
	uids := s.InstantiateFrom([]string{class}, label)
	s.HasInterface([]string{owner}, uids)
	return uids
}

// InstantiateAliasInterfaceFor creates a fresh alias interface instance
// on owner. The alias is instance-of every class that the matched
// original interfaces are themselves direct instances of (so it
// remains classed the same way a plain interface of that type/direction
// would be), and is related to each original by an AliasOf fact.
func (s *Store) InstantiateAliasInterfaceFor(owner string, originals []string, label string) []string {
	s.mu.Lock()
	classSet := make(map[string]bool)
	for _, orig := range originals {
		for cls := range s.instanceOf[orig] {
			classSet[cls] = true
		}
	}
	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	s.mu.Unlock()

	uids := s.InstantiateFrom(classes, label)
	s.HasInterface([]string{owner}, uids)

	relationUID := Create(s, AliasOfRelationUID, "AliasOf")
	for _, alias := range uids {
		for _, orig := range originals {
			s.FactFrom([]string{alias}, []string{orig}, relationUID)
		}
	}
	return uids
}

// AliasOfRelationUID is the well-known identifier of the AliasOf
// sub-relation, installed by metamodel.Bootstrap. It is referenced here
// so alias facts land under the same relation the bootstrap registers,
// even though the hypergraph package has no dependency on metamodel.
const AliasOfRelationUID = "Relation::AliasOf"

// HasConfigRelationUID is the well-known identifier of the HasConfig
// sub-relation, installed by metamodel.Bootstrap.
const HasConfigRelationUID = "Relation::HasConfig"

// Create is a package-level convenience that mirrors (*Store).Create,
// used internally to lazily ensure a well-known relation concept exists
// without importing metamodel (which itself depends on hypergraph).
func Create(s *Store, uid, label string) string {
	return s.Create(uid, label)
}

// PartOf adds part-of facts from every part to every whole.
func (s *Store) PartOf(parts, wholes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parts {
		for _, w := range wholes {
			addEdge(s.partOf, p, w)
		}
	}
}

// HasInterface adds has-interface facts from every owner to every
// interface.
func (s *Store) HasInterface(owners, ifaces []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range owners {
		for _, i := range ifaces {
			addEdge(s.hasIface, o, i)
		}
	}
}

func (s *Store) recordFact(label, relation string, from, to []string) string {
	uid := s.nextUID("Fact")
	f := &Fact{UID: uid, Label: label, Relation: relation, From: append([]string{}, from...), To: append([]string{}, to...)}
	s.facts[uid] = f
	s.factsByRel[relation] = append(s.factsByRel[relation], uid)
	return uid
}

// ConnectInterface creates one connected-to-interface fact for every
// (from, to) pair and returns the created fact identifiers.
func (s *Store) ConnectInterface(from, to []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created []string
	for _, f := range from {
		for _, t := range to {
			created = append(created, s.recordFact("", BaseConnectedToIface, []string{f}, []string{t}))
		}
	}
	return created
}

// FactFrom creates one fact of the given relation kind for every
// (from, to) pair.
func (s *Store) FactFrom(from, to []string, relation string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var created []string
	for _, f := range from {
		for _, t := range to {
			created = append(created, s.recordFact("", relation, []string{f}, []string{t}))
		}
	}
	return created
}

// SubrelationFrom declares newUID as a relation-kind concept that is a
// sub-relation of base (subclass-of base). fromTypes/toTypes document
// the expected domain/range but are not enforced.
func (s *Store) SubrelationFrom(newUID string, fromTypes, toTypes []string, base string) string {
	return s.createWithSupers(newUID, newUID, []string{base})
}

// --- traversal ---

func dedupSorted(in []string) []string {
	set := make(map[string]bool, len(in))
	for _, v := range in {
		set[v] = true
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *Store) matchesLabel(uid, label string) bool {
	if label == "" {
		return true
	}
	if f, ok := s.facts[uid]; ok {
		return f.Label == label
	}
	return s.labels[uid] == label
}

// SubclassesOf returns the transitive closure of the subclass-of
// relation starting at uid: FORWARD walks up to superclasses, INVERSE
// walks down to subclasses. Results are lexicographically sorted for
// reproducible export.
func (s *Store) SubclassesOf(uid, label string, dir Direction) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	adjacency := s.subclassOf
	if dir == INVERSE {
		adjacency = invert(s.subclassOf)
	}

	visited := make(map[string]bool)
	queue := []string{uid}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range adjacency[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []string
	for v := range visited {
		if s.matchesLabel(v, label) {
			out = append(out, v)
		}
	}
	return dedupSorted(out)
}

// DirectSubclassesOf returns the one-hop subclass-of neighbors of the
// given set: FORWARD returns direct superclasses, INVERSE returns
// direct subclasses.
func (s *Store) DirectSubclassesOf(uids []string, label string, dir Direction) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	adjacency := s.subclassOf
	if dir == INVERSE {
		adjacency = invert(s.subclassOf)
	}

	var out []string
	for _, uid := range uids {
		for next := range adjacency[uid] {
			if s.matchesLabel(next, label) {
				out = append(out, next)
			}
		}
	}
	return dedupSorted(out)
}

// InstancesOf returns the one-hop instance-of neighbors of the given
// set: FORWARD returns the classes an instance directly belongs to,
// INVERSE returns the direct instances of a class.
func (s *Store) InstancesOf(uids []string, label string, dir Direction) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	adjacency := s.instanceOf
	if dir == INVERSE {
		adjacency = invert(s.instanceOf)
	}

	var out []string
	for _, uid := range uids {
		for next := range adjacency[uid] {
			if s.matchesLabel(next, label) {
				out = append(out, next)
			}
		}
	}
	return dedupSorted(out)
}

// FactsOf returns every fact of the given relation kind, optionally
// filtered by label.
func (s *Store) FactsOf(relation, label string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, uid := range s.factsByRel[relation] {
		if s.matchesLabel(uid, label) {
			out = append(out, uid)
		}
	}
	return dedupSorted(out)
}

// RelationsFrom returns every fact (of any relation kind) whose From
// set intersects uids, optionally filtered by label.
func (s *Store) RelationsFrom(uids []string, label string) []string {
	return s.relationsByEndpoint(uids, label, true)
}

// RelationsTo returns every fact (of any relation kind) whose To set
// intersects uids, optionally filtered by label.
func (s *Store) RelationsTo(uids []string, label string) []string {
	return s.relationsByEndpoint(uids, label, false)
}

func (s *Store) relationsByEndpoint(uids []string, label string, from bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(uids))
	for _, u := range uids {
		want[u] = true
	}
	var out []string
	for uid, fact := range s.facts {
		endpoints := fact.To
		if from {
			endpoints = fact.From
		}
		hit := false
		for _, e := range endpoints {
			if want[e] {
				hit = true
				break
			}
		}
		if hit && s.matchesLabel(uid, label) {
			out = append(out, uid)
		}
	}
	return dedupSorted(out)
}

// ComponentsOf returns the sub-component instances that are part-of any
// of the given wholes, optionally filtered by label.
func (s *Store) ComponentsOf(wholes []string, label string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(wholes))
	for _, w := range wholes {
		want[w] = true
	}
	var out []string
	for part, parents := range s.partOf {
		for parent := range parents {
			if want[parent] && s.matchesLabel(part, label) {
				out = append(out, part)
				break
			}
		}
	}
	return dedupSorted(out)
}

// InterfacesOf returns, for FORWARD, the interfaces owned by the given
// concepts; for INVERSE, the owners of the given interfaces.
func (s *Store) InterfacesOf(uids []string, label string, dir Direction) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	adjacency := s.hasIface
	if dir == INVERSE {
		adjacency = invert(s.hasIface)
	}

	var out []string
	for _, uid := range uids {
		for next := range adjacency[uid] {
			if s.matchesLabel(next, label) {
				out = append(out, next)
			}
		}
	}
	return dedupSorted(out)
}

// ConfigsOf returns the configuration concepts linked to any of the
// given owners via HasConfig.
func (s *Store) ConfigsOf(owners []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(owners))
	for _, o := range owners {
		want[o] = true
	}
	var out []string
	for _, uid := range s.factsByRel[HasConfigRelationUID] {
		fact := s.facts[uid]
		for _, f := range fact.From {
			if want[f] {
				out = append(out, fact.To...)
				break
			}
		}
	}
	return dedupSorted(out)
}

// OriginalInterfacesOf returns the interfaces that the given alias
// interfaces are AliasOf.
func (s *Store) OriginalInterfacesOf(aliases []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		want[a] = true
	}
	var out []string
	for _, uid := range s.factsByRel[AliasOfRelationUID] {
		fact := s.facts[uid]
		for _, f := range fact.From {
			if want[f] {
				out = append(out, fact.To...)
				break
			}
		}
	}
	return dedupSorted(out)
}

// Fact returns the fact record for uid, if any.
func (s *Store) Fact(uid string) (*Fact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.facts[uid]
	return f, ok
}

func invert(m map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for from, tos := range m {
		for to := range tos {
			if out[to] == nil {
				out[to] = make(map[string]bool)
			}
			out[to][from] = true
		}
	}
	return out
}

// Intersect returns the sorted set intersection of all given sets.
func Intersect(sets ...[]string) []string {
	if len(sets) == 0 {
		return nil
	}
	present := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]bool)
		for _, v := range set {
			if !seen[v] {
				seen[v] = true
				present[v]++
			}
		}
	}
	var out []string
	for v, count := range present {
		if count == len(sets) {
			out = append(out, v)
		}
	}
	return dedupSorted(out)
}

// Unite returns the sorted set union of all given sets.
func Unite(sets ...[]string) []string {
	var all []string
	for _, set := range sets {
		all = append(all, set...)
	}
	return dedupSorted(all)
}

// Subtract returns a minus every element present in b.
func Subtract(a, b []string) []string {
	exclude := make(map[string]bool, len(b))
	for _, v := range b {
		exclude[v] = true
	}
	var out []string
	for _, v := range a {
		if !exclude[v] {
			out = append(out, v)
		}
	}
	return dedupSorted(out)
}
