package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const book = "Title: Test\r\n" +
	"*** START OF THE PROJECT GUTENBERG EBOOK TEST ***\r\n" +
	"The cat sat. The dog sat!\r\n" +
	"*** END OF THE PROJECT GUTENBERG EBOOK TEST ***\r\n"

func newBookServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPrintsReport(t *testing.T) {
	srv := newBookServer(t, http.StatusOK, book)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{srv.URL, "-n", "2"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	want := "Downloading text...\n" +
		"Cleaning text...\n" +
		"Extracting words...\n" +
		"Counting word frequencies...\n" +
		"\nTop 2 most frequent words:\n" +
		"------------------------------\n" +
		"the: 2\n" +
		"sat: 2\n" +
		"\nTotal unique words: 4\n" +
		"Total words analyzed: 6\n"
	if stdout.String() != want {
		t.Errorf("stdout:\n%q\nwant:\n%q", stdout.String(), want)
	}
}

func TestRunDefaultTop(t *testing.T) {
	srv := newBookServer(t, http.StatusOK, book)
	var stdout, stderr bytes.Buffer

	if code := run(context.Background(), []string{srv.URL}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Top 10 most frequent words:") {
		t.Errorf("expected default of 10:\n%s", stdout.String())
	}
	for _, line := range []string{"the: 2", "sat: 2", "cat: 1", "dog: 1"} {
		if !strings.Contains(stdout.String(), line+"\n") {
			t.Errorf("missing %q in:\n%s", line, stdout.String())
		}
	}
}

func TestRunDefaultTopFromConfig(t *testing.T) {
	srv := newBookServer(t, http.StatusOK, book)
	path := filepath.Join(t.TempDir(), "wordfreq.yaml")
	if err := os.WriteFile(path, []byte("report:\n  defaultTop: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-config", path, srv.URL}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Top 1 most frequent words:\n------------------------------\nthe: 2\n\n") {
		t.Errorf("stdout:\n%s", stdout.String())
	}
}

func TestRunTransferErrorExitsNormally(t *testing.T) {
	srv := newBookServer(t, http.StatusNotFound, "missing")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{srv.URL}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "Downloading text...\nAn error occurred: ") {
		t.Errorf("stdout:\n%s", out)
	}
	if !strings.Contains(out, "404") || !strings.HasSuffix(out, "Please check the URL and try again.\n") {
		t.Errorf("stdout:\n%s", out)
	}
	if strings.Contains(out, "Cleaning text...") {
		t.Error("pipeline continued after a fetch failure")
	}
}

func TestRunMarkerErrorHint(t *testing.T) {
	srv := newBookServer(t, http.StatusOK, "no markers in here")
	var stdout, stderr bytes.Buffer

	if code := run(context.Background(), []string{srv.URL}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "An error occurred: marker not found: start marker") {
		t.Errorf("stdout:\n%s", stdout.String())
	}
	if !strings.HasSuffix(stdout.String(), "Project Gutenberg plain-text ebook and try again.\n") {
		t.Errorf("stdout:\n%s", stdout.String())
	}
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	srv := newBookServer(t, http.StatusOK, book)
	path := filepath.Join(t.TempDir(), "wordfreq.prom")
	t.Setenv("WF_METRICS_TEXTFILE_PATH", path)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{srv.URL}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	for _, want := range []string{`wordfreq_runs_total{outcome="success"} 1`, "wordfreq_tokens_total 6"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing url", nil, exitUsage},
		{"bad n", []string{"-n", "many", "http://x"}, exitUsage},
		{"extra positional", []string{"http://x", "http://y"}, exitUsage},
		{"unknown flag", []string{"-bogus", "http://x"}, exitUsage},
		{"help", []string{"-h"}, exitOK},
		{"missing config", []string{"-config", "/nonexistent/wordfreq.yaml", "http://x"}, exitConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if stdout.Len() != 0 {
				t.Errorf("usage problems should not write to stdout: %q", stdout.String())
			}
		})
	}
}

func TestParseArgsFlagPlacement(t *testing.T) {
	tests := []struct {
		args    []string
		top     int
		topSet  bool
		refresh bool
	}{
		{[]string{"http://x"}, 10, false, false},
		{[]string{"-n", "5", "http://x"}, 5, true, false},
		{[]string{"http://x", "-n", "7"}, 7, true, false},
		{[]string{"-refresh", "http://x", "-n=3"}, 3, true, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var stderr bytes.Buffer
			opts, err := parseArgs(tt.args, &stderr)
			if err != nil {
				t.Fatalf("parseArgs: %v (%s)", err, stderr.String())
			}
			if opts.location != "http://x" || opts.top != tt.top || opts.topSet != tt.topSet || opts.refresh != tt.refresh {
				t.Errorf("opts = %+v", opts)
			}
		})
	}
}
