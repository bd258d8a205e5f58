//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputMouse      = 0
	mouseEventFMove = 0x0001
)

var (
	moduser32     = windows.NewLazySystemDLL("user32.dll")
	procSendInput = moduser32.NewProc("SendInput")
)

// mouseInput mirrors MOUSEINPUT.
type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors INPUT for the mouse case. MOUSEINPUT is the largest member of
// the union, so the Go layout matches on both 386 and amd64/arm64.
type input struct {
	inputType uint32
	mi        mouseInput
}

// sendInputInjector implements PointerInjector with user32!SendInput
type sendInputInjector struct{}

func (s *sendInputInjector) MoveRelative(dx, dy int) error {
	in := input{
		inputType: inputMouse,
		mi: mouseInput{
			dx:      int32(dx),
			dy:      int32(dy),
			dwFlags: mouseEventFMove,
		},
	}

	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		return fmt.Errorf("%w: SendInput queued %d of 1 events: %v", ErrInjectionRejected, n, err)
	}
	return nil
}

func (s *sendInputInjector) Name() string {
	return "SendInput"
}

func (s *sendInputInjector) Close() error {
	return nil
}

// NewPointerInjector creates the Windows pointer backend
func NewPointerInjector() (PointerInjector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("locate SendInput: %w", err)
	}
	return &sendInputInjector{}, nil
}
