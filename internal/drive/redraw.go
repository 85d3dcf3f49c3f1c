package drive

// PaintRequests keeps at most one self-scheduled paint in flight for hosts
// whose frames are driven by posted paint events. Request reports whether
// the caller should post a new event.
type PaintRequests struct {
	pending bool
}

func (p *PaintRequests) Request() bool {
	if p.pending {
		return false
	}
	p.pending = true
	return true
}

// Delivered marks the posted event as received.
func (p *PaintRequests) Delivered() { p.pending = false }

func (p *PaintRequests) Pending() bool { return p.pending }
