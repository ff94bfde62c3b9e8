package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/funtc/internal/numtype"
)

func TestSilentLoggerWritesNothing(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelSilent)
	l.Message("hidden %d", 1)
	l.Raw("->", "(check-sat)")
	l.Log(Text("hidden"))
	_ = l.Block("hidden", func() error { return nil })
	if buf.Len() != 0 {
		t.Errorf("silent logger wrote %q", buf.String())
	}
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	var l *Logger
	l.Message("x")
	l.Tab()
	l.Untab()
	if l.Level() != LevelSilent {
		t.Errorf("nil logger level = %d, want %d", l.Level(), LevelSilent)
	}
	Nop().Message("x")
	Nop().Log(Text("x"))
}

func TestBlockIndentsAndRestores(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelEngine)
	err := l.Block("outer", func() error {
		l.Message("inner")
		return l.Block("deeper", func() error {
			l.Message("deepest")
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	l.Message("after")

	want := "outer\n  inner\n  deeper\n    deepest\nafter\n"
	if buf.String() != want {
		t.Errorf("transcript mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestBlockRestoresIndentOnError(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelEngine)
	boom := errors.New("boom")
	if err := l.Block("failing", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Block swallowed the error: %v", err)
	}
	l.Message("after")
	if !strings.HasSuffix(buf.String(), "\nafter\n") {
		t.Errorf("indent not restored after error, got %q", buf.String())
	}
}

func TestRawGatedByVerboseLevel(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelEngine)
	l.Raw("->", "(push 1)")
	if buf.Len() != 0 {
		t.Errorf("raw traffic leaked at engine level: %q", buf.String())
	}

	l.SetLevel(LevelVerbose)
	l.Raw("->", "(push 1)")
	l.Raw("<-", "success")
	want := "-> (push 1)\n<- success\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTabMotionRecordedAtVerboseLevel(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelVerbose)
	l.Tab()
	l.Untab()
	if got, want := buf.String(), ">\n<\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTagPrefixesEveryLine(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelEngine)
	l.SetTag("ab12")
	_ = l.Block("outer", func() error {
		l.Message("inner")
		return nil
	})
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "[ab12] ") {
			t.Errorf("line missing tag: %q", line)
		}
	}
}

func TestLoggableRendering(t *testing.T) {
	x := numtype.TVar{Name: "x", Free: true}
	tests := []struct {
		name string
		in   Loggable
		want []string
	}{
		{"text", Text("hello"), []string{"hello"}},
		{"type", TypeExpr{T: numtype.TFin{X: x}}, []string{"fin x"}},
		{"goal", GoalExpr{G: numtype.Goal{Prop: numtype.TFin{X: x}}}, []string{"fin x"}},
		{"present maybe", Maybe{V: Text("v"), Ok: true}, []string{"v"}},
		{"absent maybe", Maybe{}, []string{"(nothing)"}},
		{"empty seq", Seq{}, []string{"(none)"}},
		{"seq", Seq{Text("a"), Text("b")}, []string{"a", "b"}},
		{"goals", Goals(nil), []string{"(none)"}},
		{"props", Props([]numtype.Prop{numtype.TFin{X: x}}), []string{"fin x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.traceLines()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
