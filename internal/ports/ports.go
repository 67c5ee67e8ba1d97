package ports

import (
	"fmt"
	"net"
	"sync"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Default base ports for the remote debugger and the monitoring agent.
const (
	DefaultDebugBase      = 5005
	DefaultMonitoringBase = 7005
)

// Allocator hands out debug and monitoring ports for a single launcher run.
// Each counter returns its current value then increments; ports are never
// released or reused within a run.
type Allocator struct {
	mu             sync.Mutex
	nextDebug      int
	nextMonitoring int
}

// NewAllocator creates an allocator whose counters start at the given bases.
// A base <= 0 selects the default.
func NewAllocator(debugBase, monitoringBase int) *Allocator {
	if debugBase <= 0 {
		debugBase = DefaultDebugBase
	}
	if monitoringBase <= 0 {
		monitoringBase = DefaultMonitoringBase
	}
	return &Allocator{nextDebug: debugBase, nextMonitoring: monitoringBase}
}

// NextDebug returns the next debug port.
func (a *Allocator) NextDebug() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	port := a.nextDebug
	a.nextDebug++
	return port
}

// NextMonitoring returns the next monitoring port.
func (a *Allocator) NextMonitoring() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	port := a.nextMonitoring
	a.nextMonitoring++
	return port
}

// IsPortAvailable checks if a port is available for binding
func IsPortAvailable(port int) bool {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

// Owner describes the process listening on a port.
type Owner struct {
	PID  int32
	Name string
}

func (o Owner) String() string {
	if o.Name == "" {
		return fmt.Sprintf("PID %d", o.PID)
	}
	return fmt.Sprintf("%s (PID %d)", o.Name, o.PID)
}

// ProcessOnPort returns the process listening on the given TCP port.
// found is false if nothing listens there or the lookup is not permitted.
func ProcessOnPort(port int) (owner Owner, found bool) {
	conns, err := psnet.Connections("tcp")
	if err != nil {
		return Owner{}, false
	}
	for _, c := range conns {
		if c.Status != "LISTEN" || int(c.Laddr.Port) != port || c.Pid == 0 {
			continue
		}
		owner.PID = c.Pid
		if p, err := process.NewProcess(c.Pid); err == nil {
			owner.Name, _ = p.Name()
		}
		return owner, true
	}
	return Owner{}, false
}

// PortStatus returns a human-readable status of a port
func PortStatus(port int) string {
	if IsPortAvailable(port) {
		return fmt.Sprintf("port %d is available", port)
	}
	if owner, ok := ProcessOnPort(port); ok {
		return fmt.Sprintf("port %d is in use by %s", port, owner)
	}
	return fmt.Sprintf("port %d is in use", port)
}
