package main

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestValidateNumberCmd_Valid(t *testing.T) {
	gen := domain.NewAccountNumberGenerator(rand.NewSource(1))
	number := gen.Generate(domain.AccountTypeChecking)

	cmd := validateNumberCmd()
	cmd.SetArgs([]string{number})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if strings.TrimSpace(out) != "VALID" {
		t.Fatalf("expected VALID, got %q", out)
	}
}

func TestValidateNumberCmd_Invalid(t *testing.T) {
	cmd := validateNumberCmd()
	cmd.SetArgs([]string{"1000000000000000000001"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected corrupted number to be rejected")
	}
}
