// Package platform provides the operating system backends that move the mouse pointer.
package platform

import "errors"

var (
	// ErrUnsupportedPlatform is returned when no pointer backend exists for this OS.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInjectionRejected is returned when the OS did not accept a pointer move.
	ErrInjectionRejected = errors.New("pointer move rejected")
)

// PointerInjector moves the system pointer relative to its current position.
type PointerInjector interface {
	// MoveRelative submits one relative move. A nil error means the OS accepted it.
	MoveRelative(dx, dy int) error
	Name() string
	Close() error
}

// unavailableInjector fails every move with the error that prevented setup,
// so the caller keeps its schedule and reports each failed tick.
type unavailableInjector struct {
	err error
}

// Unavailable returns an injector whose moves always fail with err.
func Unavailable(err error) PointerInjector {
	if err == nil {
		err = ErrUnsupportedPlatform
	}
	return &unavailableInjector{err: err}
}

func (u *unavailableInjector) MoveRelative(dx, dy int) error {
	return u.err
}

func (u *unavailableInjector) Name() string {
	return "unavailable"
}

func (u *unavailableInjector) Close() error {
	return nil
}
