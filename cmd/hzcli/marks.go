package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

const (
	markCorrect   = "✓"
	markIncorrect = "✗"
)

// shouldColorize reports whether writer is a terminal and NO_COLOR is unset.
func shouldColorize(writer io.Writer) bool {
	return os.Getenv("NO_COLOR") == "" && isTerminal(writer)
}

func isInteractive(reader io.Reader) bool {
	return isTerminal(reader)
}

func isTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func mark(correct, colorize bool) string {
	symbol, color := markIncorrect, text.FgRed
	if correct {
		symbol, color = markCorrect, text.FgGreen
	}
	if !colorize {
		return symbol
	}
	return color.Sprint(symbol)
}

func heading(title string, colorize bool) string {
	if !colorize {
		return title
	}
	return text.Colors{text.Bold, text.FgBlue}.Sprint(title)
}
