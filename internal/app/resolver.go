package app

import (
	"github.com/pranshuparmar/portwho/internal/config"
	"github.com/pranshuparmar/portwho/internal/container"
	"github.com/pranshuparmar/portwho/internal/logging"
	"github.com/pranshuparmar/portwho/internal/probe"
	"github.com/pranshuparmar/portwho/internal/proc"
	"github.com/pranshuparmar/portwho/internal/source"
)

// newResolver builds the probe chains. Tests replace it with stubs.
var newResolver = defaultResolver

func defaultResolver(cfg config.Config) *probe.Resolver {
	adapters := map[string]func(port int) []string{
		probe.Procfs:  proc.SocketPIDs,
		probe.Lsof:    proc.LsofPIDs,
		probe.Netstat: proc.NetstatPIDs,
	}

	r := &probe.Resolver{
		CommandName:   proc.CommandName,
		UserName:      proc.UserName,
		ContainerHint: source.ContainerOf,
		SocketVisible: proc.HasListeningSocket,
		Logger:        logging.WithComponent("probe"),
	}

	for _, name := range probe.ProcessOrder {
		if cfg.Disabled(name) {
			continue
		}
		r.Processes = append(r.Processes, probe.ProcessFunc(name, adapters[name]))
	}

	for _, rt := range cfg.RuntimeOrder() {
		c := container.New(rt)
		r.Containers = append(r.Containers, probe.ContainerFunc(rt, c.IDs, c.List))
	}

	return r
}
