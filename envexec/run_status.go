package envexec

import (
	"fmt"
)

// Status defines the outcome kind of a single execution
type Status int

// Defines run task Status result status
const (
	// not initialized status (as error)
	StatusInvalid Status = iota

	// program exits with empty error stream
	StatusSuccess

	// user caused failures
	StatusTimeLimitExceeded   // TLE
	StatusAbnormalTermination // RE
	StatusCompileError        // CE

	// internal error including: file i/o failure, spawn failure, etc
	StatusInternalError
)

var statusToString = []string{
	"Invalid",
	"Success",
	"Time Limit Exceeded",
	"Abnormal Termination",
	"Compile Error",
	"Internal Error",
}

// stringToStatus map string to corresponding Status
var stringToStatus = make(map[string]Status)

func (s Status) String() string {
	si := int(s)
	if si < 0 || si >= len(statusToString) {
		return statusToString[0] // invalid
	}
	return statusToString[si]
}

// StringToStatus convert string to Status
func StringToStatus(s string) (Status, error) {
	v, ok := stringToStatus[s]
	if !ok {
		return 0, fmt.Errorf("invalid string converting: %s", s)
	}
	return v, nil
}

func init() {
	for i, v := range statusToString {
		stringToStatus[v] = Status(i)
	}
}
