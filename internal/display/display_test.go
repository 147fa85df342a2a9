package display

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	assert.True(t, r.Contains(Point{X: 0, Y: 0}))
	assert.True(t, r.Contains(Point{X: 1919.5, Y: 1079.5}))
	assert.False(t, r.Contains(Point{X: 1920, Y: 10}))
	assert.False(t, r.Contains(Point{X: 10, Y: 1080}))
	assert.False(t, r.Contains(Point{X: -0.1, Y: 10}))
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	assert.Equal(t, Rect{X: 50, Y: 20, Width: 50, Height: 80}, a.Intersect(Rect{X: 50, Y: 20, Width: 200, Height: 200}))
	assert.True(t, a.Intersect(Rect{X: 100, Y: 0, Width: 10, Height: 10}).Empty())
}

func TestRectFromImage(t *testing.T) {
	r := RectFromImage(image.Rect(1920, 0, 3840, 1200))
	assert.Equal(t, Rect{X: 1920, Y: 0, Width: 1920, Height: 1200}, r)
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	in := []Display{{ID: 9}, {ID: 2}, {ID: 5}}
	out := Sorted(in)

	assert.Equal(t, []ID{2, 5, 9}, []ID{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, ID(9), in[0].ID)
}

func TestLookup(t *testing.T) {
	ds := []Display{{ID: 1, Name: "left"}, {ID: 4, Name: "right"}}

	d, ok := Lookup(ds, 4)
	assert.True(t, ok)
	assert.Equal(t, "right", d.Name)

	_, ok = Lookup(ds, 3)
	assert.False(t, ok)
}
