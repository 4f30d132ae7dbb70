package hal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// HostConfig describes the desktop host.
type HostConfig struct {
	Width  int
	Height int
	// Scale is the window magnification; the framebuffer is not resized.
	Scale int
	Title string

	Log logrus.FieldLogger

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

func (c *HostConfig) setDefaults() {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.Title == "" {
		c.Title = "montepi"
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
}

type hostHAL struct {
	log     logrus.FieldLogger
	console *hostConsole
	fb      *hostFramebuffer
	in      *hostInput
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg.setDefaults()
	return &hostHAL{
		log:     cfg.Log,
		console: newHostConsole(cfg.Stdin, cfg.Stdout),
		fb:      newHostFramebuffer(cfg.Width, cfg.Height),
		in:      newHostInput(),
	}
}

func (h *hostHAL) Console() Console { return h.console }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return h.in }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostConsole struct {
	mu sync.Mutex
	r  *bufio.Reader
	w  io.Writer
}

func newHostConsole(r io.Reader, w io.Writer) *hostConsole {
	return &hostConsole{r: bufio.NewReader(r), w: w}
}

func (c *hostConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

func (c *hostConsole) WriteLineString(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, s)
}

func (c *hostConsole) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
