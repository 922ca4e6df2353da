package geometry

import (
	"sort"
	"strings"

	"github.com/tanema/gween/ease"

	"github.com/ivlev/vacdoc/internal/frame"
)

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
	"out-cubic":    ease.OutCubic,
}

// EasingByName returns a named easing curve for in-between geometry.
// Names are case-insensitive; ok is false for unknown names.
func EasingByName(name string) (fn ease.TweenFunc, ok bool) {
	fn, ok = easings[strings.ToLower(name)]
	return fn, ok
}

// EasingNames lists the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// span locates t among sorted key frames. It returns the indices of the
// surrounding keys and the eased blend factor between them. Before the
// first key and after the last, both indices point at the clamping key.
func span(frames []frame.Frame, t frame.Time, fn ease.TweenFunc) (i, j int, u float64) {
	n := len(frames)
	if t <= frames[0].Time() {
		return 0, 0, 0
	}
	if t >= frames[n-1].Time() {
		return n - 1, n - 1, 0
	}
	j = sort.Search(n, func(k int) bool { return frames[k].Time() > t })
	i = j - 1
	d := float32(frames[j] - frames[i])
	u = float64(fn(float32(t-frames[i].Time()), 0, 1, d))
	return i, j, u
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func polylineLength(pts []Point, closed bool) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += dist(pts[i-1], pts[i])
	}
	if closed && len(pts) > 1 {
		total += dist(pts[len(pts)-1], pts[0])
	}
	return total
}

// resample returns n points spaced evenly by arc length along pts. For
// closed polylines the closing segment is part of the path and the start
// point is not repeated.
func resample(pts []Point, n int, closed bool) []Point {
	out := make([]Point, n)
	if len(pts) == 0 || n == 0 {
		return out
	}
	path := pts
	if closed {
		path = append(append([]Point(nil), pts...), pts[0])
	}
	total := polylineLength(path, false)
	if total == 0 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	steps := n - 1
	if closed {
		steps = n
	}
	if steps == 0 {
		out[0] = pts[0]
		return out
	}

	seg, acc := 1, 0.0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(steps)
		for seg < len(path)-1 && acc+dist(path[seg-1], path[seg]) < target {
			acc += dist(path[seg-1], path[seg])
			seg++
		}
		l := dist(path[seg-1], path[seg])
		u := 0.0
		if l > 0 {
			u = (target - acc) / l
		}
		if u > 1 {
			u = 1
		}
		out[i] = lerpPoint(path[seg-1], path[seg], u)
	}
	return out
}
