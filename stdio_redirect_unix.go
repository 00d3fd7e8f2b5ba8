//go:build unix

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// redirectStdIO points stdout and stderr at path so panics and prints from any
// goroutine are kept, e.g. while the framebuffer preview owns the console.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(std.Fd())); err != nil {
			return fmt.Errorf("dup2 %s: %w", std.Name(), err)
		}
	}
	return nil
}
