package phys

import "errors"

// Domain errors for structural and geometric operations.
var (
	// ErrMidstep indicates a structural mutation attempted while the
	// owning space is executing a step.
	ErrMidstep = errors.New("phys: structural mutation during space step")

	// ErrNotRoot indicates a space assignment on a nested compound.
	ErrNotRoot = errors.New("phys: space can only be set on a root compound")

	// ErrDuplicate indicates an entity added to a list it is already in.
	ErrDuplicate = errors.New("phys: entity already present in list")

	// ErrNilEntity indicates a nil body, constraint, or compound argument.
	ErrNilEntity = errors.New("phys: nil entity")

	// ErrNilVisitor indicates a nil traversal callback.
	ErrNilVisitor = errors.New("phys: nil visitor callback")

	// ErrNotOwned indicates a removal of an entity the list does not hold.
	ErrNotOwned = errors.New("phys: entity not present in list")

	// ErrNoMass indicates a centre-of-mass query over a subtree with no
	// shaped body; the weighted average has a zero denominator.
	ErrNoMass = errors.New("phys: compound has no body with shapes")

	// ErrStaticBody indicates a move applied to a static body that is
	// part of a live space.
	ErrStaticBody = errors.New("phys: static body cannot move while in a space")

	// ErrBadAngle indicates a non-finite rotation angle.
	ErrBadAngle = errors.New("phys: rotation angle must be finite")

	// ErrOwned indicates direct space insertion of an entity that still
	// belongs to a compound.
	ErrOwned = errors.New("phys: entity already owned by a compound")
)
