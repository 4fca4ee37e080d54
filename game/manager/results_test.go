package manager

import (
	"testing"
	"time"
)

func TestCompareOrdering(t *testing.T) {
	base := Results{Length: 10, OrangesEaten: 2, ApplesEaten: 4, Elapsed: time.Minute}
	with := func(f func(*Results)) Results {
		r := base
		f(&r)
		return r
	}

	cases := []struct {
		name string
		a, b Results
		want int
	}{
		{"identical", base, base, 0},
		{"longer wins", Results{Length: 10}, Results{Length: 5}, 1},
		{"shorter loses", Results{Length: 5}, Results{Length: 10}, -1},
		{"length beats oranges", with(func(r *Results) { r.Length = 11; r.OrangesEaten = 0 }), base, 1},
		{"oranges break a length tie", with(func(r *Results) { r.OrangesEaten = 3; r.ApplesEaten = 1 }), base, 1},
		{"apples break an orange tie", with(func(r *Results) { r.ApplesEaten = 5 }), base, 1},
		{"faster breaks a count tie", with(func(r *Results) { r.Elapsed = 30 * time.Second }), base, 1},
		{"slower loses a count tie", with(func(r *Results) { r.Elapsed = 2 * time.Minute }), base, -1},
		{"session id is ignored", with(func(r *Results) { r.SessionID = "other" }), base, 0},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Errorf("%s: Compare = %d, want %d", c.name, got, c.want)
		}
		if got := Compare(c.b, c.a); got != -c.want {
			t.Errorf("%s: reversed Compare = %d, want %d", c.name, got, -c.want)
		}
	}
}
