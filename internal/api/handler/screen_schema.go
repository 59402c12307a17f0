package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/view"
)

// screenMeta is the envelope shared by the three list screens. When a refresh
// fails but a previous snapshot exists, the rows are still served along with
// a notice; state tells the client which case it is looking at.
type screenMeta struct {
	State      string          `json:"state"`
	Notice     string          `json:"notice,omitempty"`
	Pagination view.Pagination `json:"pagination"`
}

const refreshFailedNotice = "refresh failed, showing previously loaded data"

// meta builds the shared envelope from a snapshot and its page info.
func meta[T any](snap view.Snapshot[T], pg view.Pagination) screenMeta {
	m := screenMeta{State: string(snap.State), Pagination: pg}
	if snap.State == view.StateFailed {
		m.Notice = refreshFailedNotice
	}
	return m
}

// queryPage reads the 1-based "page" query parameter, defaulting to 1.
// Out-of-range values are clamped later by the snapshot pager.
func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// querySort reads "sort" and "order" parameters. order is descending only
// when explicitly asked for.
func querySort(c echo.Context) (key string, desc bool) {
	return c.QueryParam("sort"), c.QueryParam("order") == "desc"
}
