package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/reconcile/internal/model"
)

const (
	layoutShortYear = "02.01.06"
	layoutLongYear  = "02.01.2006"
)

// normalizeDate parses s with layout and renders it as YYYY-MM-DD.
func normalizeDate(layout, s string) (string, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t.Format(model.DateFormat), nil
}
