package exec

import "context"

// FailureOutput is the fixed, user-safe text broadcast when the
// execution service cannot be reached. Raw errors never leave the server.
const FailureOutput = "Error executing code"

// Request carries one run of a room's code buffer.
type Request struct {
	Language string
	Version  string
	Code     string
	Stdin    string
}

// RunDetail is the run section of an execution result.
type RunDetail struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
	Output string `json:"output"`
}

// Result is what the execution service answered for one run.
type Result struct {
	Language string    `json:"language"`
	Version  string    `json:"version"`
	Run      RunDetail `json:"run"`
}

// FailureResult builds the substitute result broadcast on service failure.
func FailureResult(language, version string) *Result {
	return &Result{
		Language: language,
		Version:  version,
		Run:      RunDetail{Output: FailureOutput, Code: -1},
	}
}

// Runner abstracts the external code-execution service.
type Runner interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}
