//go:build !windows && !linux

package platform

// NewPointerInjector reports that this OS has no pointer backend
func NewPointerInjector() (PointerInjector, error) {
	return nil, ErrUnsupportedPlatform
}
