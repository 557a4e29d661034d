package engine

import (
	"sort"
	"strings"

	"github.com/ritamzico/dedalus/internal/ast"
)

// Tuple is a ground tuple of domain values.
type Tuple []string

// Equal reports element-wise equality.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i, v := range t {
		if v != other[i] {
			return false
		}
	}
	return true
}

// key encodes the tuple for use as a set member. Domain values are
// identifiers, so the separator cannot occur in them.
func (t Tuple) key() string {
	return strings.Join(t, "\x1f")
}

func (t Tuple) less(other Tuple) bool {
	for i := 0; i < len(t) && i < len(other); i++ {
		if t[i] != other[i] {
			return t[i] < other[i]
		}
	}
	return len(t) < len(other)
}

// Relation is a set of tuples. The zero value is an empty relation.
type Relation struct {
	tuples map[string]Tuple
}

// NewRelation returns a relation holding the given tuples.
func NewRelation(tuples ...Tuple) Relation {
	r := Relation{tuples: make(map[string]Tuple, len(tuples))}
	for _, t := range tuples {
		r.tuples[t.key()] = t
	}
	return r
}

// Add inserts a tuple and reports whether the relation grew.
func (r *Relation) Add(t Tuple) bool {
	if r.tuples == nil {
		r.tuples = make(map[string]Tuple)
	}
	key := t.key()
	if _, ok := r.tuples[key]; ok {
		return false
	}
	r.tuples[key] = t
	return true
}

// AddAll unions another relation in and reports whether this one grew.
func (r *Relation) AddAll(other Relation) bool {
	grew := false
	for _, t := range other.tuples {
		if r.Add(t) {
			grew = true
		}
	}
	return grew
}

// Contains reports membership.
func (r Relation) Contains(t Tuple) bool {
	_, ok := r.tuples[t.key()]
	return ok
}

// Len returns the number of tuples.
func (r Relation) Len() int {
	return len(r.tuples)
}

// Tuples returns the tuples in sorted order.
func (r Relation) Tuples() []Tuple {
	tuples := make([]Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		tuples = append(tuples, t)
	}
	sort.Slice(tuples, func(i, j int) bool { return tuples[i].less(tuples[j]) })
	return tuples
}

// Clone returns an independent copy.
func (r Relation) Clone() Relation {
	clone := Relation{tuples: make(map[string]Tuple, len(r.tuples))}
	for key, t := range r.tuples {
		clone.tuples[key] = t
	}
	return clone
}

// Database maps every predicate of a program to its relation.
type Database map[ast.Predicate]Relation

// Clone returns an independent copy.
func (db Database) Clone() Database {
	clone := make(Database, len(db))
	for p, r := range db {
		clone[p] = r.Clone()
	}
	return clone
}

// AsyncBuffer holds facts scheduled for future timesteps, keyed by delivery
// timestep. Absent timesteps and predicates read as empty.
type AsyncBuffer map[int]Database

// Clone returns an independent copy.
func (b AsyncBuffer) Clone() AsyncBuffer {
	clone := make(AsyncBuffer, len(b))
	for t, db := range b {
		clone[t] = db.Clone()
	}
	return clone
}

// At returns the relation buffered for predicate p at the given timestep,
// without materializing an entry.
func (b AsyncBuffer) At(timestep int, p ast.Predicate) Relation {
	return b[timestep][p]
}

// add inserts a tuple into the relation buffered for p at the given
// timestep, materializing entries as needed.
func (b AsyncBuffer) add(timestep int, p ast.Predicate, t Tuple) {
	db, ok := b[timestep]
	if !ok {
		db = make(Database)
		b[timestep] = db
	}
	r := db[p]
	r.Add(t)
	db[p] = r
}

// Timesteps returns the buffered timesteps in increasing order.
func (b AsyncBuffer) Timesteps() []int {
	timesteps := make([]int, 0, len(b))
	for t := range b {
		timesteps = append(timesteps, t)
	}
	sort.Ints(timesteps)
	return timesteps
}
