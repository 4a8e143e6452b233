package validators

import (
	"net/http"
	"strings"

	"github.com/cryptogear/backend/pkg/enums"
	pkgerrors "github.com/cryptogear/backend/pkg/errors"
)

// ParseCategory reads the optional ?category= filter. Absent or "all"
// means no filter; anything else must be a known category.
func ParseCategory(r *http.Request) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if raw == "" || raw == enums.CategoryAll {
		return "", nil
	}
	category, err := enums.ParseProductCategory(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": raw})
	}
	return string(category), nil
}
