package main

import (
	"context"
	"errors"
	"testing"
)

func TestNewGenerationInvoker_DisabledStates(t *testing.T) {
	t.Parallel()

	if NewGenerationInvoker("", "", false).Enabled() {
		t.Fatal("missing API key must disable the invoker")
	}
	if NewGenerationInvoker("key", "", true).Enabled() {
		t.Fatal("disabled flag must win over a configured key")
	}
	if !NewGenerationInvoker("key", "", false).Enabled() {
		t.Fatal("key without disable flag must enable the invoker")
	}
}

func TestGenerate_DisabledIsNoResult(t *testing.T) {
	t.Parallel()

	var g *GenerationInvoker
	if _, err := g.Generate(context.Background(), "prompt"); !errors.Is(err, errGenerationUnavailable) {
		t.Fatalf("err=%v want errGenerationUnavailable", err)
	}
}
