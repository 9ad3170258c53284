package model

// FrameStack tracks items produced by in-flight sub-expression evaluation
// (§4.3.8). In the original C++ a Frame owns temporary items and frees them
// when it is popped unless ownership was transferred elsewhere first; under
// Go's GC there is nothing to free, but the push/track/release protocol is
// kept because it is what makes "has this temporary been claimed by an
// assignment/define yet" a well-defined, testable question rather than an
// implicit one.
type FrameStack struct {
	frames [][]Item
}

// Push opens a new frame. Every sub-expression evaluation must be bracketed
// by a matching Push/Pop, even on error paths.
func (fs *FrameStack) Push() {
	fs.frames = append(fs.frames, nil)
}

// Track records item as belonging to the current (topmost) frame.
func (fs *FrameStack) Track(item Item) {
	top := len(fs.frames) - 1
	fs.frames[top] = append(fs.frames[top], item)
}

// Pop closes the current frame, discarding any items still tracked in it
// (they were never claimed by an assignment, define, or return value).
func (fs *FrameStack) Pop() {
	fs.frames = fs.frames[:len(fs.frames)-1]
}

// Release removes item (matched by UID) from the current frame's tracked
// set, signalling that a dictionary now owns it and the frame must not
// consider it an unclaimed temporary. Mirrors stack_frame::TryReleaseItem.
func (fs *FrameStack) Release(item Item) {
	top := len(fs.frames) - 1
	if top < 0 {
		return
	}
	items := fs.frames[top]
	for i, tracked := range items {
		if tracked.UID == item.UID {
			fs.frames[top] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// Depth returns the number of currently open frames, for tests asserting
// push/pop balance.
func (fs *FrameStack) Depth() int {
	return len(fs.frames)
}
