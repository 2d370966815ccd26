package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
)

// Module runs the HTTP server as a mono module.
type Module struct {
	server *Server
	addr   string
}

// Compile-time interface check
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a module that serves server on addr.
func NewModule(server *Server, addr string) *Module {
	return &Module{
		server: server,
		addr:   addr,
	}
}

// Name returns the module name
func (m *Module) Name() string {
	return "http-api"
}

// Health reports whether the task store behind the server is reachable
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.server == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not initialized",
		}
	}

	status := m.server.checkHealth(ctx)
	details := map[string]any{"addr": m.addr}
	for name, state := range status.details {
		details[name] = state
	}
	return mono.HealthStatus{
		Healthy: status.healthy,
		Message: status.message,
		Details: details,
	}
}

// Start starts listening in the background
func (m *Module) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := m.server.app.Listen(m.addr); err != nil {
			errChan <- err
		}
	}()

	// Give the listener a moment to fail on a bad or busy address
	select {
	case err := <-errChan:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-time.After(100 * time.Millisecond):
		m.server.logger.Info("HTTP server started", "addr", m.addr)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains in-flight requests and shuts the server down
func (m *Module) Stop(ctx context.Context) error {
	m.server.logger.Info("shutting down HTTP server")

	if err := m.server.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	m.server.logger.Info("HTTP server stopped")
	return nil
}
