package probe

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// stub counts its invocations so tests can assert short-circuiting.
type stub struct {
	name   string
	tokens []string
	calls  int
}

func (s *stub) Name() string { return s.name }

func (s *stub) Probe(port int) []string {
	s.calls++
	return s.tokens
}

type runtimeStub struct {
	rt        model.Runtime
	ids       []string
	listing   []model.ContainerOwner
	calls     int
	describes int
}

func (s *runtimeStub) Runtime() model.Runtime { return s.rt }

func (s *runtimeStub) Probe(port int) []string {
	s.calls++
	return s.ids
}

func (s *runtimeStub) Describe(port int) []model.ContainerOwner {
	s.describes++
	return s.listing
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newResolver(procs []ProcessProbe, ctrs []ContainerProbe) *Resolver {
	return &Resolver{
		Processes:   procs,
		Containers:  ctrs,
		CommandName: func(pid int) string { return map[int]string{4321: "webserver"}[pid] },
		Logger:      quietLogger(),
	}
}

func TestParsePID(t *testing.T) {
	tests := []struct {
		token string
		want  int
		ok    bool
	}{
		{"4321", 4321, true},
		{" 12\n", 12, true},
		{"0", 0, false},
		{"00", 0, false},
		{"", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"12a", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePID(tt.token)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePID(%q) = (%d, %v), want (%d, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveFirstProbeWins(t *testing.T) {
	procfs := &stub{name: Procfs, tokens: []string{"4321"}}
	lsof := &stub{name: Lsof, tokens: []string{"1111"}}
	netstat := &stub{name: Netstat, tokens: []string{"2222"}}
	r := newResolver([]ProcessProbe{procfs, lsof, netstat}, nil)

	state := r.Resolve(8080, model.ModeNormal)

	if !state.FoundProcess {
		t.Fatal("FoundProcess = false")
	}
	if len(state.Processes) != 1 || state.Processes[0].PID != 4321 {
		t.Fatalf("Processes = %+v, want pid 4321", state.Processes)
	}
	if state.Processes[0].Command != "webserver" || state.Processes[0].Probe != Procfs {
		t.Errorf("owner = %+v", state.Processes[0])
	}
	if lsof.calls != 0 || netstat.calls != 0 {
		t.Errorf("later probes ran: lsof=%d netstat=%d", lsof.calls, netstat.calls)
	}
}

func TestResolveFallsThroughInconclusive(t *testing.T) {
	procfs := &stub{name: Procfs}
	lsof := &stub{name: Lsof, tokens: []string{"0", "abc"}}
	netstat := &stub{name: Netstat, tokens: []string{"4321"}}
	r := newResolver([]ProcessProbe{procfs, lsof, netstat}, nil)

	state := r.Resolve(8080, model.ModeNormal)

	if procfs.calls != 1 || lsof.calls != 1 || netstat.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want 1/1/1", procfs.calls, lsof.calls, netstat.calls)
	}
	if len(state.Processes) != 1 || state.Processes[0].PID != 4321 || state.Processes[0].Probe != Netstat {
		t.Errorf("Processes = %+v", state.Processes)
	}
}

func TestResolveRejectsZeroFromEverySource(t *testing.T) {
	probes := []*stub{
		{name: Procfs, tokens: []string{"0"}},
		{name: Lsof, tokens: []string{"0", " 0 "}},
		{name: Netstat, tokens: []string{"0"}},
	}
	r := newResolver([]ProcessProbe{probes[0], probes[1], probes[2]}, nil)

	for _, mode := range []model.OutputMode{model.ModeNormal, model.ModePidOnly} {
		state := r.Resolve(8080, mode)
		if state.FoundProcess || len(state.Processes) != 0 {
			t.Errorf("mode %v: pid 0 accepted: %+v", mode, state.Processes)
		}
	}
	for _, p := range probes {
		if p.calls != 2 {
			t.Errorf("probe %s calls = %d, want 2", p.name, p.calls)
		}
	}
}

func TestResolveDedupsPIDs(t *testing.T) {
	lsof := &stub{name: Lsof, tokens: []string{"4321", "4321", "77", "4321"}}
	r := newResolver([]ProcessProbe{lsof}, nil)

	state := r.Resolve(8080, model.ModeNormal)

	if len(state.Processes) != 2 {
		t.Fatalf("Processes = %+v, want 2 unique pids", state.Processes)
	}
	if state.Processes[0].PID != 4321 || state.Processes[1].PID != 77 {
		t.Errorf("order not preserved: %+v", state.Processes)
	}
}

func TestStateDedupAcrossSources(t *testing.T) {
	s := NewState(8080, model.ModeNormal)
	if !s.AddProcess(model.ProcessOwner{PID: 4321, Probe: Procfs}) {
		t.Fatal("first add rejected")
	}
	if s.AddProcess(model.ProcessOwner{PID: 4321, Probe: Lsof}) {
		t.Error("duplicate pid from a second source accepted")
	}
	if s.AddProcess(model.ProcessOwner{PID: 0}) {
		t.Error("pid 0 accepted")
	}
	if !s.AddContainer(model.ContainerOwner{ID: "abc", Runtime: model.RuntimeDocker}) {
		t.Fatal("first container rejected")
	}
	if s.AddContainer(model.ContainerOwner{ID: "abc", Runtime: model.RuntimePodman}) {
		t.Error("duplicate container id accepted")
	}
	if len(s.Processes) != 1 || len(s.Containers) != 1 {
		t.Errorf("state = %+v", s)
	}
}

func TestResolvePidOnlyStopsAtFirstPID(t *testing.T) {
	lsof := &stub{name: Lsof, tokens: []string{"abc", "4321", "5555"}}
	netstat := &stub{name: Netstat, tokens: []string{"2222"}}
	docker := &runtimeStub{rt: model.RuntimeDocker, ids: []string{"abc"}}
	enriched := 0
	r := newResolver([]ProcessProbe{lsof, netstat}, []ContainerProbe{docker})
	r.CommandName = func(int) string { enriched++; return "x" }

	state := r.Resolve(8080, model.ModePidOnly)

	bare, ok := state.Bare()
	if !ok || bare != "4321" {
		t.Errorf("Bare() = %q, %v; want 4321", bare, ok)
	}
	if len(state.Processes) != 1 {
		t.Errorf("Processes = %+v, want exactly the first pid", state.Processes)
	}
	if state.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d", state.ExitCode())
	}
	if netstat.calls != 0 || docker.calls != 0 || enriched != 0 {
		t.Errorf("extra work after first pid: netstat=%d docker=%d enrich=%d", netstat.calls, docker.calls, enriched)
	}
}

func TestResolvePidOnlyNotFound(t *testing.T) {
	r := newResolver([]ProcessProbe{&stub{name: Procfs}, &stub{name: Lsof}}, nil)

	state := r.Resolve(9999, model.ModePidOnly)

	if _, ok := state.Bare(); ok {
		t.Error("Bare() reported an owner")
	}
	if state.ExitCode() != ExitNotFound {
		t.Errorf("ExitCode() = %d, want %d", state.ExitCode(), ExitNotFound)
	}
}

func TestResolveContainerOnlyFirstRuntime(t *testing.T) {
	procfs := &stub{name: Procfs, tokens: []string{"4321"}}
	docker := &runtimeStub{rt: model.RuntimeDocker, ids: []string{"3f2a9c1b7d4e", "9999aaaa"}}
	podman := &runtimeStub{rt: model.RuntimePodman, ids: []string{"ffff"}}
	r := newResolver([]ProcessProbe{procfs}, []ContainerProbe{docker, podman})

	state := r.Resolve(5432, model.ModeContainerOnly)

	bare, ok := state.Bare()
	if !ok || bare != "3f2a9c1b7d4e" {
		t.Errorf("Bare() = %q, %v", bare, ok)
	}
	if len(state.Containers) != 1 {
		t.Errorf("Containers = %+v, want first id only", state.Containers)
	}
	if podman.calls != 0 {
		t.Errorf("second runtime invoked %d times", podman.calls)
	}
	if procfs.calls != 0 {
		t.Errorf("process chain ran in container mode")
	}
	if docker.describes != 0 {
		t.Errorf("listing fetched in restricted mode")
	}
}

func TestResolveContainerFallsBackToSecondRuntime(t *testing.T) {
	docker := &runtimeStub{rt: model.RuntimeDocker}
	podman := &runtimeStub{rt: model.RuntimePodman, ids: []string{"ffff", "", "ffff"}}
	r := newResolver(nil, []ContainerProbe{docker, podman})

	state := r.Resolve(5432, model.ModeNormal)

	if docker.calls != 1 || podman.calls != 1 {
		t.Errorf("calls docker=%d podman=%d", docker.calls, podman.calls)
	}
	if len(state.Containers) != 1 || state.Containers[0].Runtime != model.RuntimePodman {
		t.Errorf("Containers = %+v", state.Containers)
	}
}

func TestResolveNormalDescribesContainers(t *testing.T) {
	docker := &runtimeStub{
		rt:  model.RuntimeDocker,
		ids: []string{"3f2a9c1b7d4e"},
		listing: []model.ContainerOwner{
			{ID: "3f2a9c1b7d4e", Name: "pg", Image: "postgres:16", Status: "Up"},
		},
	}
	podman := &runtimeStub{rt: model.RuntimePodman, ids: []string{"x"}}
	r := newResolver(nil, []ContainerProbe{docker, podman})

	state := r.Resolve(5432, model.ModeNormal)

	if len(state.Containers) != 1 {
		t.Fatalf("Containers = %+v", state.Containers)
	}
	c := state.Containers[0]
	if c.Name != "pg" || c.Image != "postgres:16" || c.Status != "Up" {
		t.Errorf("container not described: %+v", c)
	}
	if podman.calls != 0 {
		t.Error("second runtime invoked after first found containers")
	}
}

func TestResolveNormalRunsBothChains(t *testing.T) {
	lsof := &stub{name: Lsof, tokens: []string{"4321"}}
	docker := &runtimeStub{rt: model.RuntimeDocker, ids: []string{"abc"}}
	r := newResolver([]ProcessProbe{lsof}, []ContainerProbe{docker})

	state := r.Resolve(8080, model.ModeNormal)

	if !state.FoundProcess || !state.FoundContainer {
		t.Errorf("found flags = %v/%v, want both", state.FoundProcess, state.FoundContainer)
	}
	if state.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d", state.ExitCode())
	}
}

func TestResolveNormalNothingFound(t *testing.T) {
	r := newResolver([]ProcessProbe{&stub{name: Procfs}}, []ContainerProbe{&runtimeStub{rt: model.RuntimeDocker}})
	r.SocketVisible = func(port int) bool { return port == 22 }

	state := r.Resolve(9999, model.ModeNormal)
	if state.FoundProcess || state.FoundContainer || state.HiddenSocket {
		t.Errorf("state = %+v", state)
	}
	if state.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d, want 0 in normal mode", state.ExitCode())
	}

	state = r.Resolve(22, model.ModeNormal)
	if !state.HiddenSocket {
		t.Error("HiddenSocket = false for a socket without a visible owner")
	}
}

func TestResolveEnrichment(t *testing.T) {
	r := newResolver([]ProcessProbe{ProcessFunc(Lsof, func(int) []string { return []string{"4321"} })}, nil)
	r.UserName = func(int) string { return "www" }
	r.ContainerHint = func(pid int, command string) string {
		if command == "webserver" {
			return "docker"
		}
		return ""
	}

	state := r.Resolve(8080, model.ModeNormal)
	got := state.Processes[0]
	want := model.ProcessOwner{PID: 4321, Command: "webserver", User: "www", Probe: Lsof, Container: "docker"}
	if got != want {
		t.Errorf("owner = %+v, want %+v", got, want)
	}
}

func TestContainerFuncNilDescribe(t *testing.T) {
	c := ContainerFunc(model.RuntimePodman, func(int) []string { return []string{"a"} }, nil)
	if c.Describe(1) != nil {
		t.Error("Describe() with nil func should return nil")
	}
	if c.Runtime() != model.RuntimePodman || len(c.Probe(1)) != 1 {
		t.Error("ContainerFunc did not adapt its arguments")
	}
}
