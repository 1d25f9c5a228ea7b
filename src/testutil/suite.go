// Package testutil holds timing and summary helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"
)

// TestTimer is a utility for measuring test execution time
type TestTimer struct {
	start time.Time
	name  string
}

// NewTestTimer creates a new test timer
func NewTestTimer(name string) *TestTimer {
	return &TestTimer{
		start: time.Now(),
		name:  name,
	}
}

// Stop stops the timer and prints the duration
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// TestResult represents the result of a test with timing information
type TestResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
}

// SuiteResult collects the results of the subtests of one suite.
type SuiteResult struct {
	SuiteName   string
	TotalTests  int
	PassedTests int
	FailedTests int
	TotalTime   time.Duration
	Results     []TestResult
}

// NewSuiteResult creates a new suite result
func NewSuiteResult(suiteName string) *SuiteResult {
	return &SuiteResult{SuiteName: suiteName}
}

// Run runs fn as subtest name and records its outcome and duration.
func (s *SuiteResult) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	timer := NewTestTimer(name)
	passed := t.Run(name, fn)
	s.add(TestResult{Name: name, Duration: timer.Stop(), Passed: passed})
}

func (s *SuiteResult) add(r TestResult) {
	s.Results = append(s.Results, r)
	s.TotalTests++
	s.TotalTime += r.Duration
	if r.Passed {
		s.PassedTests++
	} else {
		s.FailedTests++
	}
}

// PrintSummary prints a summary of the suite results
func (s *SuiteResult) PrintSummary() {
	fmt.Printf("\n📊 Test Suite Summary: %s\n", s.SuiteName)
	fmt.Printf("   Total Tests: %d\n", s.TotalTests)
	fmt.Printf("   Passed: %d ✅\n", s.PassedTests)
	fmt.Printf("   Failed: %d ❌\n", s.FailedTests)
	fmt.Printf("   Total Time: %v\n", s.TotalTime)
	if s.TotalTests > 0 {
		fmt.Printf("   Success Rate: %.2f%%\n", float64(s.PassedTests)/float64(s.TotalTests)*100)
	}

	for _, r := range s.Results {
		status := "✅"
		if !r.Passed {
			status = "❌"
		}
		fmt.Printf("   %s %s: %v\n", status, r.Name, r.Duration)
	}
	fmt.Println()
}
