//go:build linux

package linux

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

// relativeMotion is the XTEST FakeInput detail value for motion relative to
// the current pointer position.
const relativeMotion = 1

// XTestPointer moves the pointer through the X11 XTEST extension.
type XTestPointer struct {
	conn *xgb.Conn
}

// NewXTestPointer connects to the given display and initializes XTEST.
func NewXTestPointer(display string) (*XTestPointer, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", display, err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("XTEST extension unavailable: %w", err)
	}
	return &XTestPointer{conn: conn}, nil
}

func (x *XTestPointer) MoveRelative(dx, dy int) error {
	if dx < math.MinInt16 || dx > math.MaxInt16 || dy < math.MinInt16 || dy > math.MaxInt16 {
		return fmt.Errorf("xtest: delta (%d, %d) out of range", dx, dy)
	}
	err := xtest.FakeInputChecked(x.conn, xproto.MotionNotify, relativeMotion, 0,
		xproto.WindowNone, int16(dx), int16(dy), 0).Check()
	if err != nil {
		return fmt.Errorf("xtest: fake motion failed: %w", err)
	}
	return nil
}

func (x *XTestPointer) Name() string {
	return "xtest"
}

func (x *XTestPointer) Close() error {
	if x.conn != nil {
		x.conn.Close()
		x.conn = nil
	}
	return nil
}
