package phys

import "fmt"

// CbType is a collision-callback group. Interactors carry a set of
// these; the interaction listener machinery matches on them.
type CbType struct {
	id   int
	name string
}

var cbTypeSeq int

// NewCbType registers a fresh callback group.
func NewCbType(name string) *CbType {
	cbTypeSeq++
	return &CbType{id: cbTypeSeq, name: name}
}

func (t *CbType) Name() string { return t.name }

func (t *CbType) String() string {
	return fmt.Sprintf("CbType#%d(%s)", t.id, t.name)
}

// Implicit groups every interactor of the kind belongs to.
var (
	AnyBody       = NewCbType("ANY_BODY")
	AnyConstraint = NewCbType("ANY_CONSTRAINT")
	AnyCompound   = NewCbType("ANY_COMPOUND")
)

// Interactor is the identity surface shared by Body, Constraint and
// Compound: a stable numeric id plus callback-group membership.
type Interactor interface {
	ID() int
	CbTypes() []*CbType
}

var interactorSeq int

func nextID() int {
	interactorSeq++
	return interactorSeq
}

// interactor is the embeddable base. The implicit kind group is fixed
// at construction and always first in CbTypes.
type interactor struct {
	id       int
	implicit *CbType
	cbTypes  []*CbType
}

func newInteractor(implicit *CbType) interactor {
	return interactor{id: nextID(), implicit: implicit}
}

func (i *interactor) ID() int { return i.id }

func (i *interactor) CbTypes() []*CbType {
	out := make([]*CbType, 0, len(i.cbTypes)+1)
	out = append(out, i.implicit)
	return append(out, i.cbTypes...)
}

func (i *interactor) AddCbType(t *CbType) {
	if t == nil || t == i.implicit {
		return
	}
	for _, have := range i.cbTypes {
		if have == t {
			return
		}
	}
	i.cbTypes = append(i.cbTypes, t)
}

func (i *interactor) HasCbType(t *CbType) bool {
	if t == i.implicit {
		return true
	}
	for _, have := range i.cbTypes {
		if have == t {
			return true
		}
	}
	return false
}

// pairKey gives an order-independent key for an interactor pair, used
// by the ignored-pair table.
func pairKey(a, b Interactor) [2]int {
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return [2]int{a.ID(), b.ID()}
}
