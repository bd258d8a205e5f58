package util

import "os/exec"

// LookupCommand resolves name on PATH. The second result reports whether it was found.
func LookupCommand(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
