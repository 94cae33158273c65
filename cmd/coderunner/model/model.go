package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/criyle/coderunner/envexec"
	"github.com/criyle/coderunner/language"
	"github.com/criyle/coderunner/worker"
)

// Request defines single submission
type Request struct {
	RequestID string `json:"requestId"`
	Language  string `json:"language"`
	Source    string `json:"source"`
	Input     string `json:"input"`
}

// Status offers JSON marshal for envexec.Status
type Status envexec.Status

// String converts status to string
func (s Status) String() string {
	return envexec.Status(s).String()
}

// MarshalJSON convert status into string
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(envexec.Status(s).String())), nil
}

// UnmarshalJSON convert string into status
func (s *Status) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	v, err := envexec.StringToStatus(str)
	if err != nil {
		return err
	}
	*s = Status(v)
	return nil
}

// Result defines the outcome of a submission
type Result struct {
	RequestID   string `json:"requestId,omitempty"`
	Status      Status `json:"status"`
	Output      string `json:"output"`
	Stderr      string `json:"stderr"`
	CompileInfo string `json:"compileInfo,omitempty"`
	Signal      int    `json:"signal"`
	Time        uint64 `json:"time"`
	Memory      uint64 `json:"memory"`
}

func (r Result) String() string {
	type Result struct {
		RequestID   string
		Status      Status
		Output      string
		Stderr      string
		CompileInfo string
		Signal      int
		Time        time.Duration
		Memory      envexec.Size
	}
	d := Result{
		RequestID:   r.RequestID,
		Status:      r.Status,
		Output:      "len:" + strconv.Itoa(len(r.Output)),
		Stderr:      "len:" + strconv.Itoa(len(r.Stderr)),
		CompileInfo: "len:" + strconv.Itoa(len(r.CompileInfo)),
		Signal:      r.Signal,
		Time:        time.Duration(r.Time),
		Memory:      envexec.Size(r.Memory),
	}
	return fmt.Sprintf("%+v", d)
}

// Language defines a supported language
type Language struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// ConvertRequest converts json request into worker request, a request id is
// generated if absent
func ConvertRequest(req *Request) *worker.Request {
	id := req.RequestID
	if id == "" {
		id = uuid.NewString()
	}
	return &worker.Request{
		RequestID: id,
		Language:  req.Language,
		Source:    req.Source,
		Input:     req.Input,
	}
}

// ConvertResponse converts worker response into json result
func ConvertResponse(rt worker.Response) Result {
	o := rt.Outcome
	res := Result{
		RequestID: rt.RequestID,
		Status:    Status(o.Status),
		Output:    o.Output,
		Stderr:    o.Stderr,
		Signal:    o.Signal,
		Time:      uint64(o.Time),
		Memory:    o.Memory.Byte(),
	}
	switch o.Status {
	case envexec.StatusCompileError, envexec.StatusInternalError:
		res.CompileInfo = o.CompileInfo
	}
	return res
}

// ConvertLanguages converts registry listing into json
func ConvertLanguages(infos []language.Info) []Language {
	rt := make([]Language, 0, len(infos))
	for _, l := range infos {
		rt = append(rt, Language{ID: l.Name, Version: l.Version})
	}
	return rt
}
