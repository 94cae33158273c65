package worker

import (
	"fmt"

	"github.com/criyle/coderunner/runner"
)

// Request defines single submission for the worker
type Request struct {
	RequestID string
	Language  string
	Source    string
	Input     string
}

// Response defines worker response for single request
type Response struct {
	RequestID string
	Language  string
	Outcome   runner.Outcome
}

func (r Request) String() string {
	return fmt.Sprintf("{RequestID:%s Language:%s Source:len:%d Input:len:%d}",
		r.RequestID, r.Language, len(r.Source), len(r.Input))
}
