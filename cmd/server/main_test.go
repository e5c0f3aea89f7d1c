package main

import (
	"testing"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/config"
)

func TestAccountNumberSeed(t *testing.T) {
	pinned := &config.Config{AccountNumberSeed: 42}
	if got := accountNumberSeed(pinned); got != 42 {
		t.Fatalf("expected pinned seed 42, got %d", got)
	}

	unset := &config.Config{}
	if got := accountNumberSeed(unset); got == 0 {
		t.Fatalf("expected entropy-derived seed, got 0")
	}
}
