package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Diagnostic codes.
const (
	CodeUnmatched   = "unmatched"
	CodeStageFailed = "stage-failed"
	CodeSkipped     = "skipped"
	CodeCleanup     = "cleanup"
	CodeShadowed    = "shadowed"
)

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Subject identifies what this relates to: a stage or a header path.
	Subject string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

//go:generate go tool stringer -type=Severity -linecomment

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, subject string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Subject:  subject,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Subject:     subject,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, subject string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Subject:  subject,
	})
}

// Log writes every diagnostic to logger at the matching level.
func (d *Diagnostics) Log(logger *slog.Logger) {
	for _, group := range [][]Diagnostic{d.Infos, d.Warnings, d.Errors} {
		for _, diag := range group {
			attrs := []any{"code", diag.Code}
			if diag.Subject != "" {
				attrs = append(attrs, "subject", diag.Subject)
			}

			if len(diag.Suggestions) > 0 {
				attrs = append(attrs, "suggestions", diag.Suggestions)
			}

			logger.Log(context.Background(), diag.Severity.level(), diag.Message, attrs...)
		}
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Subject != "" {
		msg = d.Subject + ": " + msg
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
