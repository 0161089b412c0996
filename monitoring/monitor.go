// Package monitoring turns a running Controller into an HTTP server that
// external tools can poll for progress and pause/resume, the same role the
// grounding corpus's simulation monitor plays for an Engine. The
// component-introspection and CPU-profile endpoints that monitor depends on
// (goseth reflection serialization, net/http/pprof) have no FPGA-placer
// analogue and are dropped; the gopsutil resource endpoint is kept as-is.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
)

// pausable is the subset of Controller the monitor needs; accepting an
// interface keeps this package testable without a real annealing run.
type pausable interface {
	Pause()
	Continue()
	CurrentStatus() anneal.StatusLine
}

// Monitor serves a small HTTP API over a running Controller.
type Monitor struct {
	controller pausable
	portNumber int
}

// NewMonitor creates a Monitor over controller.
func NewMonitor(controller pausable) *Monitor {
	return &Monitor{controller: controller}
}

// WithPortNumber sets the port the monitor listens on. A value below 1000
// is rejected in favor of a random port, matching the grounding corpus's
// guard against accidentally binding a privileged port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server; using a random port instead.\n", portNumber)
		portNumber = 0
	}
	m.portNumber = portNumber
	return m
}

// StartServer starts serving in the background and returns the address it
// bound to.
func (m *Monitor) StartServer() (string, error) {
	r := mux.NewRouter()
	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/resource", m.resource)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	fmt.Fprintf(os.Stderr, "Monitoring placement run at http://localhost:%d\n", addr.Port)

	go func() {
		_ = http.Serve(listener, r)
	}()

	return addr.String(), nil
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.controller.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	m.controller.Continue()
	w.WriteHeader(http.StatusOK)
}

// now reports just the current temperature and move count, a cheaper
// poll than the full status line for a client that only wants a heartbeat.
func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	status := m.controller.CurrentStatus()
	fmt.Fprintf(w, "{\"temp\":%g,\"total_moves\":%d}", status.Temp, status.TotalMoves)
}

func (m *Monitor) progress(w http.ResponseWriter, _ *http.Request) {
	status := m.controller.CurrentStatus()
	b, err := json.Marshal(status)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) resource(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	rsp := resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS}
	b, err := json.Marshal(rsp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
