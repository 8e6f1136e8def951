package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhle/geodev/internal/schema"
)

// parsePage reads skip and limit, defaulting each when absent. Range checks
// are left to the services.
func parsePage(q url.Values) (schema.Page, error) {
	page := schema.DefaultPage()

	if v := strings.TrimSpace(q.Get("skip")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return schema.Page{}, schema.NewFieldError("skip", "must be an integer")
		}
		page.Skip = n
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return schema.Page{}, schema.NewFieldError("limit", "must be an integer")
		}
		page.Limit = n
	}
	return page, nil
}

func parseProjectID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("project_id"), 10, 64)
	if err != nil {
		return 0, schema.NewFieldError("project_id", "must be an integer")
	}
	return id, nil
}
