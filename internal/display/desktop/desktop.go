// Package desktop shows a running simulation in a GLFW window. ESC or
// closing the window stops the run, SPACE pauses it and +/- change speed.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"outbreak/internal/sim"
)

// GLFW and the GL context must stay on the main thread.
func init() { runtime.LockOSThread() }

type Options struct {
	Width, Height int
	// Speed, if set, is halved and doubled by - and +.
	Speed Speed
	// Done releases a paused window so the run can see it was stopped.
	Done <-chan struct{}
}

// Window is a sim.Sink. It must be created, presented to and closed from
// the goroutine that runs main.
type Window struct {
	win     *glfw.Window
	rend    *Renderer
	input   *Input
	session *Session
	speed   Speed
	done    <-chan struct{}
	last    sim.Frame
}

func Open(opts Options) (*Window, error) {
	win, err := initWindow(opts.Width, opts.Height, "outbreak")
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Window{
		win:     win,
		rend:    rend,
		input:   NewInput(),
		session: NewSession(),
		speed:   opts.Speed,
		done:    opts.Done,
	}, nil
}

// Present draws f and polls input. While paused it keeps redrawing f
// without returning, so the simulation does not advance. It returns
// sim.ErrStopped once the viewer closes the window, and nil early when
// Done fires during a pause.
func (w *Window) Present(f sim.Frame) error {
	w.last = f
	w.session.Frames++
	for {
		w.poll()
		if w.session.Closed() {
			return sim.ErrStopped
		}
		w.draw()
		if !w.session.Hold(w.done) {
			return nil
		}
		glfw.WaitEventsTimeout(0.05)
	}
}

func (w *Window) poll() {
	glfw.PollEvents()
	if w.win.ShouldClose() || w.win.GetKey(glfw.KeyEscape) == glfw.Press {
		w.session.Close()
		return
	}
	if w.input.JustPressed(w.win, glfw.KeySpace) {
		w.session.TogglePause()
	}
	if w.speed == nil {
		return
	}
	plus, kpPlus := w.input.JustPressed(w.win, glfw.KeyEqual), w.input.JustPressed(w.win, glfw.KeyKPAdd)
	minus, kpMinus := w.input.JustPressed(w.win, glfw.KeyMinus), w.input.JustPressed(w.win, glfw.KeyKPSubtract)
	faster, slower := plus || kpPlus, minus || kpMinus
	if faster != slower {
		cur := w.speed.Rate()
		if next := nextRate(cur, faster); next != cur {
			w.speed.SetRate(next)
		}
	}
}

func (w *Window) draw() {
	fbW, fbH := w.win.GetFramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		return
	}
	w.rend.Draw(w.last, fbW, fbH)
	title := Title(w.last.Report)
	if w.session.State == StatePaused {
		title += "  [PAUSED]"
	}
	w.win.SetTitle(title)
	w.win.SwapBuffers()
}

func (w *Window) Close() error {
	w.rend.Destroy()
	w.win.Destroy()
	glfw.Terminate()
	return nil
}
