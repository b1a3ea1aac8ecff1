package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	var errorSink bytes.Buffer

	testCases := []struct {
		name         string
		args         []string
		expectErr    bool
		expectedN    uint64
		expectedAlgo string
	}{
		{"Nominal case (defaults)", []string{}, false, 1000000, "adaptive"},
		{"Specifying N", []string{"-n", "50"}, false, 50, "adaptive"},
		{"Specifying the algorithm", []string{"-algo", "fd"}, false, 1000000, "fd"},
		{"Specifying the algorithm (case-insensitive)", []string{"-algo", "FFT"}, false, 1000000, "fft"},
		{"Error case: unknown argument", []string{"-invalid-flag"}, true, 0, ""},
		{"Error case: unknown algorithm", []string{"-algo", "nonexistent"}, true, 0, ""},
		{"Error case: invalid timeout", []string{"-timeout", "-5s"}, true, 0, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := parseConfig("test", tc.args, &errorSink)

			if tc.expectErr {
				if err == nil {
					t.Error("an error was expected, but none was returned")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.N != tc.expectedN {
				t.Errorf("N = %d, want %d", config.N, tc.expectedN)
			}
			if config.Algo != tc.expectedAlgo {
				t.Errorf("Algo = %q, want %q", config.Algo, tc.expectedAlgo)
			}
		})
	}
}

func TestRunSingle(t *testing.T) {
	var buf bytes.Buffer
	config := AppConfig{N: 10, Algo: "fd", Timeout: time.Minute, Details: true}
	if exitCode := run(config, &buf); exitCode != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitSuccess)
	}
	if !strings.Contains(buf.String(), "F(10) = 55") {
		t.Errorf("output does not contain F(10) = 55:\n%s", buf.String())
	}
}

func TestRunComparison(t *testing.T) {
	var buf bytes.Buffer
	config := AppConfig{N: 20, Algo: "all", Timeout: time.Minute, Details: true}
	if exitCode := run(config, &buf); exitCode != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitSuccess)
	}
	output := buf.String()
	if !strings.Contains(output, "Comparison Summary") || !strings.Contains(output, "Global Status: Success") {
		t.Errorf("comparison output is incorrect:\n%s", output)
	}
}

func TestRunTimeout(t *testing.T) {
	var buf bytes.Buffer
	config := AppConfig{N: 100_000_000, Algo: "fd", Timeout: 1 * time.Nanosecond}
	if exitCode := run(config, &buf); exitCode != ExitErrorTimeout {
		t.Fatalf("exit code = %d, want %d", exitCode, ExitErrorTimeout)
	}
	if !strings.Contains(buf.String(), "Failure (Timeout)") {
		t.Errorf("output should mention timeout:\n%s", buf.String())
	}
}
