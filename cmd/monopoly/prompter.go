// cmd/monopoly/prompter.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
)

// consolePrompter asks questions on a terminal. An empty answer to a menu takes
// the default; "q" or end of input cancels.
type consolePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsolePrompter(in io.Reader, out io.Writer) *consolePrompter {
	return &consolePrompter{in: bufio.NewScanner(in), out: out}
}

func (c *consolePrompter) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *consolePrompter) Confirm(title, prompt string) bool {
	fmt.Fprintf(c.out, "[%s] %s [y/N]: ", title, prompt)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *consolePrompter) ChooseInt(title, prompt string, min, max int) (int, bool) {
	for {
		fmt.Fprintf(c.out, "[%s] %s (%d-%d, q to cancel): ", title, prompt, min, max)
		line, ok := c.readLine()
		if !ok || line == "" || strings.EqualFold(line, "q") {
			return 0, false
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "please enter a number")
			continue
		}
		return v, true
	}
}

func (c *consolePrompter) ChooseOne(title, prompt string, options []string, def int) (int, bool) {
	fmt.Fprintf(c.out, "[%s] %s\n", title, prompt)
	for i, opt := range options {
		marker := " "
		if i == def {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s%d) %s\n", marker, i+1, opt)
	}
	for {
		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok || strings.EqualFold(line, "q") {
			return 0, false
		}
		if line == "" {
			return def, true
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(c.out, "choose 1-%d\n", len(options))
			continue
		}
		return n - 1, true
	}
}

// randomPrompter answers at random with no strategy. It drives soak runs in
// simulation mode.
type randomPrompter struct {
	rng *rand.Rand
}

func newRandomPrompter(seed int64) *randomPrompter {
	return &randomPrompter{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomPrompter) Confirm(title, prompt string) bool {
	return r.rng.Intn(2) == 0
}

func (r *randomPrompter) ChooseInt(title, prompt string, min, max int) (int, bool) {
	// lower quarter of the range keeps soak games going longer
	hi := min + (max-min)/4
	return min + r.rng.Intn(hi-min+1), true
}

func (r *randomPrompter) ChooseOne(title, prompt string, options []string, def int) (int, bool) {
	return r.rng.Intn(len(options)), true
}
