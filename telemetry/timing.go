package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"expensetally/output"
)

// TimingCollector records a tree of operation timings.
type TimingCollector struct {
	mu      sync.Mutex
	root    *timerNode
	current *timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *timerNode
	children []*timerNode
}

// NewTimingCollector creates an empty collector. The first Start becomes
// the root of the timing tree.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation nested under the currently open one.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report writes the timing tree.
//
//	summarize ledger.txt: 12ms
//	├─ load schema: 2ms
//	├─ parse: 8ms
//	└─ aggregate: 1ms
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	name := c.root.name
	if styles != nil {
		name = styles.Header(name)
	}
	fmt.Fprintf(w, "%s: %s\n", name, formatDuration(c.root.duration()))

	for i, child := range c.root.children {
		writeNode(w, child, "", i == len(c.root.children)-1, styles)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()
	if t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: time.Now(), parent: t.node}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}

func writeNode(w io.Writer, node *timerNode, prefix string, last bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	duration := node.duration()
	timing := formatDuration(duration)
	if styles != nil {
		// Slow operations stand out; fast ones fade.
		if duration >= 100*time.Millisecond {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
	}
	fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, timing)

	for i, child := range node.children {
		writeNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
