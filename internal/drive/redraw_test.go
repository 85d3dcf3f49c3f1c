package drive

import "testing"

func TestPaintRequestsSingleInFlight(t *testing.T) {
	var p PaintRequests
	if !p.Request() {
		t.Fatal("first request should post a paint")
	}
	// A resize while a frame is queued reuses that frame.
	if p.Request() {
		t.Fatal("second request posted a duplicate paint")
	}
	p.Delivered()
	if p.Pending() {
		t.Fatal("still pending after delivery")
	}
	if !p.Request() {
		t.Fatal("request after delivery should post a paint")
	}
}

func TestResizeThenPaintSeesNewLayout(t *testing.T) {
	s := newTestState()
	var p PaintRequests
	p.Request()
	s.Resize(640, 480)
	if p.Request() {
		t.Fatal("resize queued a second paint")
	}
	p.Delivered()

	var rec recorder
	ComposeFrame(&rec, s, loadedImages(), 0, 60)
	if rec.ops[0] != "sky:day" {
		t.Fatalf("first op = %q", rec.ops[0])
	}
	cars := rec.with("img:car")
	want := "img:car:120,284,400,160"
	if len(cars) != 1 || cars[0] != want {
		t.Errorf("car after resize = %v, want %s", cars, want)
	}
}
