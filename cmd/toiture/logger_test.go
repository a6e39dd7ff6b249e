package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDualHandler(t *testing.T) {
	var core, errs bytes.Buffer

	log := slog.New(&dualHandler{
		coreHandler:  slog.NewTextHandler(&core, &slog.HandlerOptions{Level: slog.LevelDebug}),
		errorHandler: slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}).With(slog.String("op", "test"))

	log.Info("draft autosaved")
	log.Error("failed to autosave draft")

	assert.Contains(t, core.String(), "draft autosaved")
	assert.Contains(t, core.String(), "failed to autosave draft")

	assert.NotContains(t, errs.String(), "draft autosaved")
	assert.Contains(t, errs.String(), "failed to autosave draft")
	assert.Contains(t, errs.String(), "op=test")
}

func TestDualHandlerGroup(t *testing.T) {
	var core, errs bytes.Buffer

	log := slog.New(&dualHandler{
		coreHandler:  slog.NewTextHandler(&core, nil),
		errorHandler: slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}).WithGroup("draft")

	log.Error("failed to autosave draft", slog.String("key", "calculatorDraft:abc"))

	assert.Contains(t, core.String(), "draft.key=calculatorDraft:abc")
	assert.Contains(t, errs.String(), "draft.key=calculatorDraft:abc")
}
