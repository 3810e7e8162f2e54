package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/api/metrics"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// AdminHandler handles the admin-only operations. Routes using it are
// guarded by the RBAC middleware; ownership scoping is deliberately absent.
type AdminHandler struct {
	service ports.TodoService
}

func NewAdminHandler(service ports.TodoService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListTodos handles GET /admin/todo.
//
// @Summary      List every todo in the system
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/todo [get]
func (h *AdminHandler) ListTodos(c echo.Context) error {
	todos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// DeleteTodo handles DELETE /admin/todo/:id.
//
// @Summary      Delete any todo, regardless of owner
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/todo/{id} [delete]
func (h *AdminHandler) DeleteTodo(c echo.Context) error {
	todoID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAny(c.Request().Context(), todoID); err != nil {
		return err
	}

	metrics.TodosDeletedTotal.WithLabelValues("admin").Inc()
	return c.NoContent(http.StatusNoContent)
}
