package logger

import "testing"

type recorder struct {
	calls []string
	kv    [][]any
}

func (r *recorder) record(level, msg string, kv []any) {
	r.calls = append(r.calls, level+":"+msg)
	r.kv = append(r.kv, kv)
}

func (r *recorder) Log(m string, kv ...any)   { r.record("log", m, kv) }
func (r *recorder) Debug(m string, kv ...any) { r.record("debug", m, kv) }
func (r *recorder) Info(m string, kv ...any)  { r.record("info", m, kv) }
func (r *recorder) Warn(m string, kv ...any)  { r.record("warn", m, kv) }
func (r *recorder) Error(m string, kv ...any) { r.record("error", m, kv) }
func (r *recorder) Fatal(m string, kv ...any) { r.record("fatal", m, kv) }

func TestUninitializedLoggerIsSilent(t *testing.T) {
	singleton = nil
	Info("nothing happens")
	Log("nothing happens")
}

func TestDispatchToAllInstances(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	defer func() { singleton = nil }()

	Info("hello", "k", 1)
	Log("plain", "x", 2)
	Warn("careful")

	for _, r := range []*recorder{a, b} {
		if len(r.calls) != 3 {
			t.Fatalf("expected 3 calls, got %v", r.calls)
		}
		if r.calls[1] != "log:plain" || len(r.kv[1]) != 2 {
			t.Fatalf("log call should forward keyvals, got %v %v", r.calls[1], r.kv[1])
		}
	}
}
