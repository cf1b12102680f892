package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// ANSI color codes, disabled automatically when stdout is not a terminal.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func colorized() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func paint(color, s string) string {
	if !colorized() {
		return s
	}
	return color + s + reset
}

func stamp() string {
	return time.Now().Format("15:04:05")
}

func line(color, mark, tag, msg string) {
	fmt.Printf("%s %s %s %s\n", paint(dim, stamp()), paint(color, mark), paint(bold, "["+tag+"]"), msg)
}

// Info logs a neutral progress message under a tag.
func Info(tag, msg string) {
	line(cyan, "•", tag, msg)
}

// Success logs a completed-step message under a tag.
func Success(tag, msg string) {
	line(green, "✓", tag, msg)
}

// Warn logs a recoverable problem under a tag.
func Warn(tag, msg string) {
	line(yellow, "!", tag, msg)
}

// Error logs a failure under a tag.
func Error(tag, msg string) {
	line(red, "✗", tag, msg)
}

// Banner prints the startup header with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(paint(bold, "routescout "+version))
	fmt.Println(paint(dim, "route profitability scanner"))
}

// Section prints a visual divider before a new block of output.
func Section(title string) {
	fmt.Printf("\n%s\n", paint(bold, "── "+title+" "+dashes(title)))
}

func dashes(title string) string {
	n := 48 - len(title)
	if n < 4 {
		n = 4
	}
	out := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		out = append(out, "─"...)
	}
	return string(out)
}

// Stats prints a single key/value summary line.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s %v\n", paint(dim, key+":"), value)
}
