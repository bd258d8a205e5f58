//go:build linux

package linux

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	uinputPath       = "/dev/uinput"
	uinputDeviceName = "dizzymouse-pointer"
	uinputNameSize   = 80
	uinputAbsCount   = 64

	busVirtual = 0x06

	evSyn     = 0x00
	evRel     = 0x02
	relX      = 0x00
	relY      = 0x01
	synReport = 0x00

	// _IOW('U', 100, int), _IOW('U', 101, int), _IO('U', 1), _IO('U', 2)
	uiSetEvBit   = 0x40045564
	uiSetRelBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
)

// ErrDeviceClosed is returned when moving a pointer whose device is gone.
var ErrDeviceClosed = errors.New("uinput device is closed")

// inputEvent mirrors struct input_event for the running architecture.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// deviceDescription mirrors the legacy struct uinput_user_dev, which every
// kernel with uinput still accepts as the first write.
type deviceDescription struct {
	Name         [uinputNameSize]byte
	BusType      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	AbsMax       [uinputAbsCount]int32
	AbsMin       [uinputAbsCount]int32
	AbsFuzz      [uinputAbsCount]int32
	AbsFlat      [uinputAbsCount]int32
}

// UinputPointer moves the pointer through a virtual relative-axis device.
// It needs write access to /dev/uinput but no display server.
type UinputPointer struct {
	fd int
}

// NewUinputPointer registers the virtual device.
func NewUinputPointer() (*UinputPointer, error) {
	return openUinput(uinputPath)
}

func openUinput(path string) (*UinputPointer, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	u := &UinputPointer{fd: fd}

	for _, bit := range []struct{ req, value int }{
		{uiSetEvBit, evRel},
		{uiSetRelBit, relX},
		{uiSetRelBit, relY},
	} {
		if err := unix.IoctlSetInt(fd, uint(bit.req), bit.value); err != nil {
			u.Close()
			return nil, fmt.Errorf("enable relative axes: %w", err)
		}
	}

	desc, err := encode(describeDevice())
	if err == nil {
		_, err = unix.Write(fd, desc)
	}
	if err == nil {
		err = unix.IoctlSetInt(fd, uiDevCreate, 0)
	}
	if err != nil {
		u.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return u, nil
}

func describeDevice() deviceDescription {
	var d deviceDescription
	copy(d.Name[:], uinputDeviceName)
	d.BusType = busVirtual
	d.Version = 1
	return d
}

// moveEvents is one relative move followed by a sync report.
func moveEvents(dx, dy int32) []inputEvent {
	return []inputEvent{
		{Type: evRel, Code: relX, Value: dx},
		{Type: evRel, Code: relY, Value: dy},
		{Type: evSyn, Code: synReport},
	}
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (u *UinputPointer) MoveRelative(dx, dy int) error {
	if u.fd <= 0 {
		return ErrDeviceClosed
	}
	frame, err := encode(moveEvents(int32(dx), int32(dy)))
	if err != nil {
		return err
	}
	if _, err := unix.Write(u.fd, frame); err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	return nil
}

func (u *UinputPointer) Name() string {
	return "uinput"
}

// Close removes the virtual device. Closing twice is a no-op.
func (u *UinputPointer) Close() error {
	if u.fd <= 0 {
		return nil
	}
	fd := u.fd
	u.fd = 0
	_ = unix.IoctlSetInt(fd, uiDevDestroy, 0)
	return unix.Close(fd)
}
