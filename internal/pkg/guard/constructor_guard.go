package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error, so that a zero-value object always fails validation
// with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. Embedding a guard in a struct lets Validate detect
// zero-value instances that bypassed construction and the invariants the
// constructor enforces.
//
// Example:
//
//	type Reading struct {
//	    deviceID string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewReading(deviceID string) (Reading, error) {
//	    if deviceID == "" {
//	        return Reading{}, errors.New("device id is required")
//	    }
//	    return Reading{deviceID: deviceID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Reading) Validate() error {
//	    return r.guard.Validate(ErrReadingIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks the owning object as
// properly constructed. Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the owning object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
