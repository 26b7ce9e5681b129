package main

import (
	"fmt"
	"io"

	"github.com/trezcool/agenda/core/route"
)

// terminalMounter prints the screens of the mounted Destination.
type terminalMounter struct {
	out     io.Writer
	mounted chan route.Destination
}

func newTerminalMounter(out io.Writer) *terminalMounter {
	return &terminalMounter{out: out, mounted: make(chan route.Destination, 8)}
}

func (m *terminalMounter) Mount(d route.Destination) {
	fmt.Fprintf(m.out, "== %s (%s)\n", route.Title(d), d)
	for i, s := range route.Screens(d) {
		if s.Icon == "" {
			fmt.Fprintf(m.out, "  %d. %s\n", i+1, s.Name)
			continue
		}
		fmt.Fprintf(m.out, "  %d. %s [%s]\n", i+1, s.Name, s.Icon)
	}

	select {
	case m.mounted <- d:
	default:
	}
}

func (m *terminalMounter) Unmount(route.Destination) {}

// Mounted receives every mounted Destination.
func (m *terminalMounter) Mounted() <-chan route.Destination {
	return m.mounted
}
