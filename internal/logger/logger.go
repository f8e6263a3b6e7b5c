package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes tagged, colored log lines to stdout and mirrors them
// into a plain-text log file when TABLESIDE_LOG_FILE is set.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	debug   bool
	tagInfo *color.Color
	tagWarn *color.Color
	tagErr  *color.Color
	tagDbg  *color.Color
}

func NewLogger() *Logger {
	l := &Logger{
		debug:   strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"),
		tagInfo: color.New(color.FgGreen, color.Bold),
		tagWarn: color.New(color.FgYellow, color.Bold),
		tagErr:  color.New(color.FgRed, color.Bold),
		tagDbg:  color.New(color.FgCyan),
	}

	if path := os.Getenv("TABLESIDE_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			l.file = f
		}
	}

	return l
}

// Close flushes and closes the log file, if one is open.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(level string, c *color.Color, tag, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Printf("%s [%s] %s %s\n", ts, c.Sprintf("%-5s", level), color.New(color.Bold).Sprintf("[%s]", tag), msg)

	if l.file != nil {
		fmt.Fprintf(l.file, "%s [%-5s] [%s] %s\n", ts, level, tag, msg)
	}
}

func (l *Logger) Debug(tag, msg string) {
	if !l.debug {
		return
	}
	l.write("DEBUG", l.tagDbg, tag, msg)
}

func (l *Logger) Info(tag, msg string)  { l.write("INFO", l.tagInfo, tag, msg) }
func (l *Logger) Warn(tag, msg string)  { l.write("WARN", l.tagWarn, tag, msg) }
func (l *Logger) Error(tag, msg string) { l.write("ERROR", l.tagErr, tag, msg) }

func (l *Logger) Fatal(tag, msg string) {
	l.write("FATAL", l.tagErr, tag, msg)
	l.Close()
	os.Exit(1)
}

// LogAPI records a single remote call against the POS API.
func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

// LogOrder records an order lifecycle action keyed by order id.
func (l *Logger) LogOrder(action string, orderID int64, msg string) {
	l.Info("ORDER", fmt.Sprintf("[%s] order=%d %s", action, orderID, msg))
}

// LogCart records a cart reconciliation action keyed by menu item id.
func (l *Logger) LogCart(action string, itemID int64, msg string) {
	l.Info("CART", fmt.Sprintf("[%s] item=%d %s", action, itemID, msg))
}

// LogSync records a refresher convergence event.
func (l *Logger) LogSync(action, msg string) {
	l.Info("SYNC", fmt.Sprintf("[%s] %s", action, msg))
}

// LogProcess records a startup/shutdown phase.
func (l *Logger) LogProcess(phase, msg string) {
	l.Info("PROCESS", fmt.Sprintf("[%s] %s", phase, msg))
}
