//go:build js && wasm

// Command herowasm runs the hero choreographer and the role typewriter in
// the browser. Build with GOOS=js GOARCH=wasm; see web/Makefile.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"syscall/js"
	"time"

	"github.com/vsm-0/portfolio/internal/hero"
	"github.com/vsm-0/portfolio/internal/loop"
	"github.com/vsm-0/portfolio/internal/sections"
	"github.com/vsm-0/portfolio/internal/typewriter"
)

const queueSize = 256

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	window := js.Global()
	doc := window.Get("document")

	settings, err := fetchSettings("/api/hero")
	if err != nil {
		logger.Warn("hero: using default settings", "error", err)
		settings = hero.NewSettings(hero.DefaultOptions(), nil, 0)
	}

	// Everything that touches the controller runs on the loop goroutine.
	// Scroll and timeupdate samples may be dropped when it lags; frames,
	// mount, teardown and play rejection may not.
	jobs := loop.New(queueSize)
	page := pageDocument{window: window, doc: doc}

	// a nil Media makes the controller treat playback as refused
	var (
		media hero.Media
		vm    *videoMedia
	)
	if el := doc.Call("getElementById", sections.HeroVideoID); !el.IsNull() {
		vm = &videoMedia{el: el}
		media = vm
	}

	ctrl := hero.NewController(hero.Config{
		Options:  settings.Options(),
		Media:    media,
		Document: page,
		Clock:    frameClock{window: window, jobs: jobs},
		Logger:   logger,
	})
	if vm != nil {
		vm.rejected = func() { jobs.Push(func() { ctrl.Dispatch(hero.PlayRejected{}) }) }
		listen(vm.el, "timeupdate", func(js.Value) {
			pos := vm.el.Get("currentTime").Float()
			jobs.Offer(func() { ctrl.Dispatch(hero.TimeUpdate{Position: pos}) })
		}, true)
	}

	var heroVisible atomic.Bool
	heroVisible.Store(true)
	if heroEl := doc.Call("querySelectorAll", "#"+sections.HeroID); heroEl.Length() > 0 {
		observe(heroEl, 0.25, func(_ js.Value, visible bool, _ js.Value) {
			heroVisible.Store(visible)
		})
	}

	progress := doc.Call("getElementById", "scroll-progress")
	root := doc.Get("documentElement")
	listen(window, "scroll", func(js.Value) {
		offset := window.Get("scrollY").Float()
		visible := heroVisible.Load()
		jobs.Offer(func() { ctrl.Dispatch(hero.Scroll{Offset: offset, HeroVisible: visible}) })

		if !progress.IsNull() {
			span := root.Get("scrollHeight").Float() - window.Get("innerHeight").Float()
			ratio := 0.0
			if span > 0 {
				ratio = offset / span
			}
			progress.Get("style").Call("setProperty", "--progress", strconv.FormatFloat(ratio, 'f', 4, 64))
		}
	}, true)

	armReveal(doc)

	ctx, cancel := context.WithCancel(context.Background())
	startTypewriter(ctx, doc, settings.Roles, logger)

	listen(window, "pagehide", func(js.Value) {
		cancel()
		jobs.Push(ctrl.Teardown)
	}, false)

	go func() {
		time.Sleep(time.Duration(settings.LoaderMs) * time.Millisecond)
		if loader := doc.Call("getElementById", "loader"); !loader.IsNull() {
			loader.Get("classList").Call("add", "loader-done")
		}
		jobs.Push(ctrl.Mount)
	}()

	_ = jobs.Run(context.Background())
}

func fetchSettings(url string) (hero.Settings, error) {
	var s hero.Settings
	resp, err := http.Get(url)
	if err != nil {
		return s, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return s, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return s, fmt.Errorf("decode hero settings: %w", err)
	}
	return s, nil
}

// armReveal hides reveal-gated sections until each first enters the
// viewport. Once revealed a section stays revealed.
func armReveal(doc js.Value) {
	targets := doc.Call("querySelectorAll", "[data-reveal]")
	if targets.Length() == 0 || js.Global().Get("IntersectionObserver").IsUndefined() {
		return
	}
	doc.Get("documentElement").Get("classList").Call("add", "reveal-armed")
	observe(targets, 0.1, func(target js.Value, visible bool, observer js.Value) {
		if !visible {
			return
		}
		target.Get("classList").Call("add", "revealed")
		observer.Call("unobserve", target)
	})
}

func startTypewriter(ctx context.Context, doc js.Value, roles []string, logger *slog.Logger) {
	el := doc.Call("getElementById", sections.HeroRoleID)
	if el.IsNull() {
		return
	}
	cycler, err := typewriter.New(roles)
	if err != nil {
		// keep the server-rendered role
		logger.Warn("hero: typewriter disabled", "error", err)
		return
	}
	el.Set("textContent", cycler.Text())
	go func() {
		_ = cycler.Run(ctx, func(text string) {
			el.Set("textContent", text)
		})
	}()
}
