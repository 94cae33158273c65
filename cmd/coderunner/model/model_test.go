package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/criyle/coderunner/envexec"
	"github.com/criyle/coderunner/language"
	"github.com/criyle/coderunner/runner"
	"github.com/criyle/coderunner/worker"
)

func TestStatus_MarshalUnmarshalJSON(t *testing.T) {
	type wrap struct {
		Status Status `json:"status"`
	}
	orig := wrap{Status: Status(envexec.StatusTimeLimitExceeded)}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"status":"Time Limit Exceeded"}` {
		t.Errorf("unexpected json %s", data)
	}
	var got wrap
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got.Status != orig.Status {
		t.Errorf("got %v, want %v", got.Status, orig.Status)
	}
}

func TestStatus_UnmarshalJSON_Invalid(t *testing.T) {
	var s Status
	if err := s.UnmarshalJSON([]byte(`"not_a_status"`)); err == nil {
		t.Error("expected error for invalid status string")
	}
	if err := s.UnmarshalJSON([]byte(`1`)); err == nil {
		t.Error("expected error for non string status")
	}
}

func TestConvertRequest(t *testing.T) {
	r := ConvertRequest(&Request{Language: "java", Source: "src", Input: "in"})
	if r.RequestID == "" {
		t.Error("expected generated request id")
	}
	if r.Language != "java" || r.Source != "src" || r.Input != "in" {
		t.Errorf("unexpected request %+v", r)
	}
	if r := ConvertRequest(&Request{RequestID: "qwq"}); r.RequestID != "qwq" {
		t.Errorf("expected request id to be kept, got %q", r.RequestID)
	}
}

func TestConvertResponse(t *testing.T) {
	rt := ConvertResponse(worker.Response{
		RequestID: "a",
		Outcome: runner.Outcome{
			Status:      envexec.StatusSuccess,
			Output:      "42",
			CompileInfo: "ignored",
			Time:        30 * time.Millisecond,
			Memory:      1 << 20,
		},
	})
	if rt.CompileInfo != "" {
		t.Errorf("compile info should only be set on compile error, got %q", rt.CompileInfo)
	}
	if rt.Time != uint64(30*time.Millisecond) || rt.Memory != 1<<20 {
		t.Errorf("unexpected telemetry %+v", rt)
	}

	rt = ConvertResponse(worker.Response{
		Outcome: runner.Outcome{Status: envexec.StatusCompileError, CompileInfo: "prog.c:1: error"},
	})
	if rt.CompileInfo != "prog.c:1: error" {
		t.Errorf("expected compile info, got %q", rt.CompileInfo)
	}
	if s := rt.String(); !strings.Contains(s, "Compile Error") {
		t.Errorf("unexpected string %s", s)
	}
}

func TestConvertLanguages(t *testing.T) {
	rt := ConvertLanguages([]language.Info{{Name: "c", Version: "gcc"}, {Name: "java", Version: "Java 1.6"}})
	if len(rt) != 2 || rt[0].ID != "c" || rt[1].Version != "Java 1.6" {
		t.Errorf("unexpected languages %+v", rt)
	}
}
