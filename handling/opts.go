package handling

import (
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"
	"strings"
)

// ParseProductFilter reads category, active and search from the query string
func ParseProductFilter(r *http.Request) (structs.ProductFilter, error) {
	query := r.URL.Query()

	filter := structs.ProductFilter{
		Category: strings.TrimSpace(query.Get("category")),
		Search:   strings.TrimSpace(query.Get("search")),
	}

	active, err := lib.QueryBool(r, "active")
	if err != nil {
		return structs.ProductFilter{}, err
	}
	filter.Active = active

	return filter, nil
}
