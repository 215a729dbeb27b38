package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	d.AddInfo(CodeSkipped, "skipped after generate-bindings failed", "render-meson")
	d.AddWarning(CodeUnmatched, "no engine header found", "godot_cpp/variant/variants.hpp", "variant", "varient")
	d.AddError(CodeStageFailed, "exit status 1", "generate-bindings")

	require.Len(t, d.Errors, 1)
	assert.Equal(t, SeverityError, d.Errors[0].Severity)
	assert.Equal(t, "generate-bindings: [stage-failed] exit status 1", d.Errors[0].String())
	assert.Equal(t,
		"godot_cpp/variant/variants.hpp: [unmatched] no engine header found (did you mean variant, varient?)",
		d.Warnings[0].String())
	assert.Equal(t, "render-meson: [skipped] skipped after generate-bindings failed", d.Infos[0].String())
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer

	var d Diagnostics
	d.AddWarning(CodeUnmatched, "no engine header found", "godot_cpp/variant/variant.hpp")
	d.AddError(CodeStageFailed, "clone failed", "fetch-bindings")
	d.Log(slog.New(slog.NewTextHandler(&buf, nil)))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "subject=godot_cpp/variant/variant.hpp")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="clone failed"`)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}
