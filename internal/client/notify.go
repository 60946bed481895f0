package client

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// NotificationType classifies a notification
type NotificationType string

// Notification types
const (
	Success NotificationType = "success"
	Error   NotificationType = "error"
	Warning NotificationType = "warning"
	Info    NotificationType = "info"
)

var notificationColors = map[NotificationType]string{
	Success: "\x1b[32m",
	Error:   "\x1b[31m",
	Warning: "\x1b[33m",
	Info:    "\x1b[36m",
}

var notificationIcons = map[NotificationType]string{
	Success: "✔",
	Error:   "✖",
	Warning: "!",
	Info:    "i",
}

// Notifier prints typed notifications to a terminal
type Notifier struct {
	out   io.Writer
	color bool
}

// NewNotifier creates a Notifier writing to w. Colors are used only when w
// is a terminal.
func NewNotifier(w io.Writer) *Notifier {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Notifier{out: w, color: color}
}

// Notify prints one notification
func (n *Notifier) Notify(typ NotificationType, title, message string) {
	icon := notificationIcons[typ]
	if n.color {
		fmt.Fprintf(n.out, "%s%s %s\x1b[0m", notificationColors[typ], icon, title)
	} else {
		fmt.Fprintf(n.out, "%s %s", icon, title)
	}
	if message != "" {
		fmt.Fprintf(n.out, ": %s", message)
	}
	fmt.Fprintln(n.out)
}

func (n *Notifier) Success(title, message string) { n.Notify(Success, title, message) }
func (n *Notifier) Error(title, message string)   { n.Notify(Error, title, message) }
func (n *Notifier) Warning(title, message string) { n.Notify(Warning, title, message) }
func (n *Notifier) Info(title, message string)    { n.Notify(Info, title, message) }
