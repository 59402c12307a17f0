package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/view"
)

// UserHandler serves the read-only utilisateurs screen.
type UserHandler struct {
	collection *view.Collection[domain.User]
}

func NewUserHandler(collection *view.Collection[domain.User]) *UserHandler {
	return &UserHandler{collection: collection}
}

// List renders the account table with an optional role filter.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page   query  int     false  "Page number (1-based)"
// @Param        role   query  string  false  "Filter: admin, abonne"
// @Param        sort   query  string  false  "Sort key: nom, created_at"
// @Param        order  query  string  false  "asc or desc"
// @Success      200    {object}  userListResponse
// @Failure      502    {object}  map[string]string
// @Router       /utilisateurs [get]
func (h *UserHandler) List(c echo.Context) error {
	err := h.collection.Refresh(c.Request().Context())
	snap := h.collection.Snapshot()
	if err != nil && !errors.Is(err, view.ErrSuperseded) && len(snap.Items) == 0 {
		return err
	}

	if role := domain.Role(strings.TrimSpace(c.QueryParam("role"))); role != "" {
		snap = snap.Filter(func(u domain.User) bool { return u.Role == role })
	}

	sortKey, desc := querySort(c)
	snap = snap.Sort(userLess(sortKey), desc)

	items, pg := snap.Page(queryPage(c))
	rows := make([]userRow, 0, len(items))
	for _, u := range items {
		rows = append(rows, toUserRow(u))
	}

	return c.JSON(http.StatusOK, userListResponse{
		screenMeta: meta(snap, pg),
		Rows:       rows,
	})
}

func userLess(key string) func(a, b domain.User) bool {
	switch key {
	case "nom":
		return func(a, b domain.User) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "created_at":
		return func(a, b domain.User) bool {
			if a.CreatedAt == nil {
				return false
			}
			if b.CreatedAt == nil {
				return true
			}
			return a.CreatedAt.Before(*b.CreatedAt)
		}
	default:
		return nil
	}
}
