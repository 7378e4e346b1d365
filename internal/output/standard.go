package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"

	"github.com/pranshuparmar/portwho/internal/container"
	"github.com/pranshuparmar/portwho/internal/probe"
	"github.com/pranshuparmar/portwho/pkg/model"
)

// RenderStandard writes the normal-mode report: a banner and one line per
// owner for each category, suggested commands for containers, and a summary.
func RenderStandard(w io.Writer, s *probe.State, colorEnabled bool) {
	t := newTheme(w, colorEnabled)

	fmt.Fprintln(w, t.paint(t.banner, fmt.Sprintf("Processes listening on port %d", s.Port)))
	if len(s.Processes) == 0 {
		fmt.Fprintln(w, "  "+t.paint(t.notFound, fmt.Sprintf("No process found listening on port %d", s.Port)))
		if s.HiddenSocket {
			fmt.Fprintln(w, "  "+t.paint(t.muted, "A socket is open on this port but its owner is not visible to you."))
			fmt.Fprintln(w, "  "+t.paint(t.muted, fmt.Sprintf("Try again with elevated privileges: sudo portwho %d", s.Port)))
		}
	}
	for _, p := range s.Processes {
		fmt.Fprintln(w, "  "+processLine(t, p))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.paint(t.banner, fmt.Sprintf("Containers publishing port %d", s.Port)))
	if len(s.Containers) == 0 {
		fmt.Fprintln(w, "  "+t.paint(t.notFound, fmt.Sprintf("No container found publishing port %d", s.Port)))
	}
	for _, c := range s.Containers {
		fmt.Fprintln(w, "  "+containerLine(t, c))
	}
	if len(s.Containers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, indent.String(suggestionBlock(t, s), 2))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.paint(t.summary, summary(s)))
}

func processLine(t theme, p model.ProcessOwner) string {
	var b strings.Builder
	b.WriteString(t.paint(t.label, "PID "))
	b.WriteString(t.paint(t.pid, fmt.Sprintf("%d", p.PID)))

	cmd := sanitize(p.Command)
	if cmd == "" {
		cmd = "unknown"
	}
	b.WriteString("  ")
	b.WriteString(t.paint(t.command, cmd))

	var details []string
	if p.User != "" {
		details = append(details, "user "+sanitize(p.User))
	}
	if p.Container != "" {
		details = append(details, "via "+p.Container)
	}
	details = append(details, "found by "+p.Probe)
	b.WriteString("  ")
	b.WriteString(t.paint(t.muted, "("+strings.Join(details, ", ")+")"))
	return b.String()
}

func containerLine(t theme, c model.ContainerOwner) string {
	parts := []string{
		t.paint(t.label, string(c.Runtime)),
		t.paint(t.id, sanitize(c.ID)),
	}
	if c.Name != "" {
		parts = append(parts, t.paint(t.command, sanitize(c.Name)))
	}
	if c.Image != "" {
		parts = append(parts, sanitize(c.Image))
	}
	if c.Status != "" {
		parts = append(parts, t.paint(t.muted, sanitize(c.Status)))
	}
	if len(c.Ports) > 0 {
		ports := make([]string, len(c.Ports))
		for i, m := range c.Ports {
			ports[i] = m.String()
		}
		parts = append(parts, strings.Join(ports, ", "))
	}
	return strings.Join(parts, "  ")
}

// suggestionBlock lists follow-up commands for every container found. The
// commands are only printed, never run.
func suggestionBlock(t theme, s *probe.State) string {
	var b strings.Builder
	b.WriteString(t.paint(t.banner, "Suggested commands") + "\n")

	listed := make(map[model.Runtime]bool)
	for _, c := range s.Containers {
		if !listed[c.Runtime] {
			listed[c.Runtime] = true
			fmt.Fprintf(&b, "  %s %s\n", t.paint(t.label, fmt.Sprintf("%-8s", "List:")), container.New(c.Runtime).ListCommand(s.Port))
		}
	}
	for _, c := range s.Containers {
		if len(s.Containers) > 1 {
			fmt.Fprintf(&b, "  %s\n", t.paint(t.id, sanitize(c.ID)))
		}
		for _, sg := range container.Suggestions(c.Runtime, sanitize(c.ID)) {
			fmt.Fprintf(&b, "  %s %s\n", t.paint(t.label, fmt.Sprintf("%-8s", sg.Label+":")), sg.Command)
		}
	}
	return b.String()
}

func summary(s *probe.State) string {
	if !s.FoundProcess && !s.FoundContainer {
		return fmt.Sprintf("Port %d: nothing found", s.Port)
	}
	return fmt.Sprintf("Port %d: %s, %s", s.Port,
		plural(len(s.Processes), "process", "processes"),
		plural(len(s.Containers), "container", "containers"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
