package testutil

import (
	"time"

	"github.com/preston-bernstein/mlb-season-service/internal/timeutil"
)

// GameTime parses an upstream game timestamp or panics.
func GameTime(v string) time.Time {
	t, err := timeutil.ParseGameTime(v)
	if err != nil {
		panic(err)
	}
	return t
}
