package conformance

import (
	"fmt"

	"feel"
	"feel/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test   LoadedTest
	Passed bool
	Error  error
}

// Run executes one loaded test in both API modes: the raising mode must
// match the expectation exactly, and when a failure is expected the
// non-raising mode must yield null.
func Run(test LoadedTest) TestResult {
	result := TestResult{Test: test}

	tc := test.Test
	value, err := feel.Evaluate(tc.Expression, tc.Context)

	if tc.Expect.Error != "" {
		if err == nil {
			result.Error = fmt.Errorf("expected %s, got value %s", tc.Expect.Error, value.String())
			return result
		}
		kind, ok := types.KindOf(err)
		if !ok || kind.String() != tc.Expect.Error {
			result.Error = fmt.Errorf("expected %s, got %v", tc.Expect.Error, err)
			return result
		}
		if quiet := feel.EvaluateOrNull(tc.Expression, tc.Context); !types.IsNull(quiet) {
			result.Error = fmt.Errorf("non-raising mode yielded %s, want null", quiet.String())
			return result
		}
		result.Passed = true
		return result
	}

	if err != nil {
		result.Error = fmt.Errorf("unexpected error: %w", err)
		return result
	}
	expected := types.ValueOf(tc.Expect.Value)
	if !expected.Equal(value) {
		result.Error = fmt.Errorf("expected %s, got %s", expected.String(), value.String())
		return result
	}
	result.Passed = true
	return result
}
