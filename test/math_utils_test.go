package main

import (
	"testing"

	"shelfsense/utils"
)

func TestRound2(t *testing.T) {
	if got := utils.Round2(2.999); got != 3.0 {
		t.Fatalf("expected 3.0, got %v", got)
	}
	if got := utils.Round2(12.344); got != 12.34 {
		t.Fatalf("expected 12.34, got %v", got)
	}
}

func TestRound4(t *testing.T) {
	if got := utils.Round4(0.98765); got != 0.9877 {
		t.Fatalf("expected 0.9877, got %v", got)
	}
	if got := utils.Round4(0.85); got != 0.85 {
		t.Fatalf("expected 0.85, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := utils.Clamp(-5, 0, 100); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := utils.Clamp(150, 0, 100); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := utils.Clamp(42, 0, 100); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}
