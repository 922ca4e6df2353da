// Package frame identifies moments on the animation timeline.
package frame

import "strconv"

// Frame is an integer keyframe index. Negative frames are valid.
type Frame int

// Time is a continuous position on the timeline, measured in frames.
type Time float64

// Time returns the timeline position of the frame.
func (f Frame) Time() Time { return Time(f) }

func (f Frame) String() string { return strconv.Itoa(int(f)) }

// Floor returns the latest frame at or before t.
func (t Time) Floor() Frame {
	i := int(t)
	if Time(i) > t {
		i--
	}
	return Frame(i)
}

// IsFrame reports whether t falls exactly on a frame.
func (t Time) IsFrame() bool { return Time(t.Floor()) == t }
