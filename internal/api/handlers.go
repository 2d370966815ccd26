package api

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2"
)

// healthHandler handles GET /health.
func (s *Server) healthHandler(c *fiber.Ctx) error {
	status := s.checkHealth(c.UserContext())
	resp := HealthResponse{
		Status:  "healthy",
		Message: status.message,
		Details: status.details,
	}
	if !status.healthy {
		resp.Status = "unhealthy"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

type health struct {
	healthy bool
	message string
	details map[string]any
}

func (s *Server) checkHealth(ctx context.Context) health {
	if s.opts.HealthTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.HealthTimeout)
		defer cancel()
	}

	h := health{healthy: true, message: "operational", details: map[string]any{"store": "ok"}}
	if err := s.tasks.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", "check", "store", "err", err)
		h = health{message: "task store unreachable", details: map[string]any{"store": "unreachable"}}
	}

	names := make([]string, 0, len(s.opts.Checks))
	for name := range s.opts.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.opts.Checks[name](ctx); err != nil {
			s.logger.Warn("health check failed", "check", name, "err", err)
			h.details[name] = "unreachable"
			if h.healthy {
				h.healthy = false
				h.message = name + " unreachable"
			}
			continue
		}
		h.details[name] = "ok"
	}
	return h
}

// listTasks handles GET /api/tasks.
func (s *Server) listTasks(c *fiber.Ctx) error {
	tasks, err := s.tasks.ListTasks(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

// createTask handles POST /api/tasks.
func (s *Server) createTask(c *fiber.Ctx) error {
	input, err := decodeTaskInput(c.Body())
	if err != nil {
		return err
	}

	task, err := s.tasks.CreateTask(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// updateTask handles PUT /api/tasks/:id.
func (s *Server) updateTask(c *fiber.Ctx) error {
	input, err := decodeTaskInput(c.Body())
	if err != nil {
		return err
	}

	task, err := s.tasks.UpdateTask(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// deleteTask handles DELETE /api/tasks/:id.
func (s *Server) deleteTask(c *fiber.Ctx) error {
	if err := s.tasks.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: MsgTaskDeleted})
}
