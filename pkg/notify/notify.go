// Package notify implements the notifiers used by the command line hosts.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
)

type Notifier interface {
	Notify(title, message string, severity models.Severity)
}

// Console prints notifications on a terminal, colored by severity.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(title, message string, severity models.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintf(c.out, "%s %s\n", severityColor(severity).Sprintf("%s:", title), message)
}

func severityColor(severity models.Severity) *color.Color {
	switch severity {
	case models.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case models.SeveritySuccess:
		return color.New(color.FgGreen, color.Bold)
	case models.SeverityInfo:
		return color.New(color.FgBlue, color.Bold)
	default:
		return color.New(color.Bold)
	}
}

// Log records notifications in the global logger at debug level.
type Log struct{}

func (Log) Notify(title, message string, severity models.Severity) {
	zap.S().Named("notify").Debugw(message, "title", title, "severity", severity)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(title, message string, severity models.Severity) {
	for _, n := range m {
		n.Notify(title, message, severity)
	}
}
