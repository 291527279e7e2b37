//go:build js && wasm

package main

import (
	"strconv"
	"syscall/js"
	"time"

	"github.com/vsm-0/portfolio/internal/hero"
	"github.com/vsm-0/portfolio/internal/loop"
)

// videoMedia drives the hero <video> element.
type videoMedia struct {
	el       js.Value
	rejected func()
}

func (m *videoMedia) Play() error {
	p := m.el.Call("play")
	if p.Type() != js.TypeObject || p.Get("catch").Type() != js.TypeFunction {
		return nil
	}
	var onReject js.Func
	onReject = js.FuncOf(func(js.Value, []js.Value) any {
		onReject.Release()
		m.rejected()
		return nil
	})
	p.Call("catch", onReject)
	return nil
}

func (m *videoMedia) Pause() {
	m.el.Call("pause")
}

func (m *videoMedia) Seek(position float64) {
	m.el.Set("currentTime", position)
}

// pageDocument pins the body with position: fixed so the page cannot move,
// and restores the offset on release.
type pageDocument struct {
	window js.Value
	doc    js.Value
}

func (d pageDocument) ScrollOffset() float64 {
	return d.window.Get("scrollY").Float()
}

func (d pageDocument) Pin(offset float64) {
	style := d.doc.Get("body").Get("style")
	style.Set("position", "fixed")
	style.Set("top", strconv.FormatFloat(-offset, 'f', -1, 64)+"px")
	style.Set("left", "0")
	style.Set("right", "0")
	style.Set("width", "100%")
}

func (d pageDocument) Unpin() {
	style := d.doc.Get("body").Get("style")
	for _, prop := range []string{"position", "top", "left", "right", "width"} {
		style.Call("removeProperty", prop)
	}
}

func (d pageDocument) ScrollTo(offset float64) {
	d.window.Call("scrollTo", map[string]any{"top": offset, "behavior": "instant"})
}

func (d pageDocument) ScrollIntoView(anchor string) bool {
	el := d.doc.Call("getElementById", anchor)
	if el.IsNull() || el.IsUndefined() {
		return false
	}
	el.Call("scrollIntoView", map[string]any{"behavior": "smooth", "block": "start"})
	return true
}

// frameClock schedules on requestAnimationFrame; the frame itself runs on
// the loop goroutine.
type frameClock struct {
	window js.Value
	jobs   *loop.Queue
}

func (c frameClock) Now() time.Time { return time.Now() }

func (c frameClock) RequestFrame(fn func()) hero.Cancel {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		c.jobs.Push(fn)
		return nil
	})
	id := c.window.Call("requestAnimationFrame", cb)
	return func() {
		c.window.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}

// listen registers fn for a DOM event and never releases it; the listeners
// live as long as the page.
func listen(target js.Value, event string, fn func(ev js.Value), passive bool) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	target.Call("addEventListener", event, cb, map[string]any{"passive": passive})
}

// observe calls fn with each entry's target and intersection state.
func observe(targets js.Value, threshold float64, fn func(target js.Value, visible bool, observer js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries, observer := args[0], args[1]
		for i := 0; i < entries.Length(); i++ {
			e := entries.Index(i)
			fn(e.Get("target"), e.Get("isIntersecting").Bool(), observer)
		}
		return nil
	})
	obs := js.Global().Get("IntersectionObserver").New(cb, map[string]any{"threshold": threshold})
	for i := 0; i < targets.Length(); i++ {
		obs.Call("observe", targets.Index(i))
	}
}
