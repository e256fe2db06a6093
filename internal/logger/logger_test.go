package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelAndTagFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}}, &out)
	defer Init(NewConfig(), nil)

	Debugf("plain %d", 1)
	DebugTagf("noisy", "dropped")
	DebugTagf("history", "kept %s", "too")

	got := out.String()
	if !strings.Contains(got, "plain 1") || !strings.Contains(got, "kept too") {
		t.Fatalf("expected both kept messages, got:\n%s", got)
	}
	if strings.Contains(got, "dropped") {
		t.Fatalf("disabled tag was logged:\n%s", got)
	}
	if !strings.Contains(got, "logger_test.go") {
		t.Fatalf("expected caller source in output:\n%s", got)
	}
}

func TestLogger_EnabledTagsDropUntagged(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "info", EnabledTags: []string{"buffer"}}, &out)
	defer Init(NewConfig(), nil)

	Infof("untagged")
	Debugf("below level")
	logAtLevel(ParseLevel("warn"), "buffer", "tagged")

	got := out.String()
	if strings.Contains(got, "untagged") || strings.Contains(got, "below level") {
		t.Fatalf("unexpected message logged:\n%s", got)
	}
	if !strings.Contains(got, "tagged") {
		t.Fatalf("expected tagged message:\n%s", got)
	}
}

func TestLogger_PackageFilter(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, &out)
	defer Init(NewConfig(), nil)

	Infof("from the logger package")
	if out.Len() != 0 {
		t.Fatalf("expected package filter to drop the message, got:\n%s", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARNING": "WARN",
		"err":     "ERROR",
		"bogus":   "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
