//go:build linux

package platform

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/stigoleg/dizzymouse/internal/platform/linux"
	"github.com/stigoleg/dizzymouse/internal/util"
)

// NewPointerInjector picks the first Linux backend that works: XTEST on an X11
// session, then a uinput virtual device, then xdotool.
func NewPointerInjector() (PointerInjector, error) {
	var errs []error

	displayServer := linux.DetectDisplayServer()
	log.Printf("linux: display server: %s", displayServer)

	if display := os.Getenv("DISPLAY"); display != "" && displayServer == linux.DisplayServerX11 {
		p, err := linux.NewXTestPointer(display)
		if err == nil {
			log.Printf("linux: using xtest on %s", display)
			return p, nil
		}
		log.Printf("linux: xtest unavailable: %v", err)
		errs = append(errs, err)
	}

	u, err := linux.NewUinputPointer()
	if err == nil {
		log.Printf("linux: using uinput")
		return u, nil
	}
	log.Printf("linux: uinput unavailable: %v", err)
	errs = append(errs, err)

	if path, ok := util.LookupCommand("xdotool"); ok {
		log.Printf("linux: using %s", path)
		return linux.NewXdotoolPointer(path), nil
	}
	errs = append(errs, errors.New("xdotool not found"))

	return nil, fmt.Errorf("no pointer backend available: %w", errors.Join(errs...))
}
