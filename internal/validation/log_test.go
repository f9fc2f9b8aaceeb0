package validation

import "testing"

func TestLogAppendOrder(t *testing.T) {
	l := NewLog()
	l.Pass("Cat A", "first", "ok")
	l.Fail("Cat B", "second", "broken")
	l.Warn("Cat A", "third", "hmm")

	records := l.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	checks := []string{"first", "second", "third"}
	for i, want := range checks {
		if records[i].Check != want {
			t.Errorf("record %d check = %q, want %q (insertion order must be preserved)", i, records[i].Check, want)
		}
	}

	for i, r := range records {
		if r.Timestamp.IsZero() {
			t.Errorf("record %d has zero timestamp", i)
		}
	}
}

func TestLogRecordsReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Pass("Cat", "check", "ok")

	records := l.Records()
	records[0].Message = "tampered"

	if l.Records()[0].Message != "ok" {
		t.Error("mutating the returned slice must not affect the log")
	}
}

func TestLogSummaryInvariant(t *testing.T) {
	l := NewLog()
	l.Pass("C", "p1", "")
	l.Pass("C", "p2", "")
	l.Fail("C", "f1", "")
	l.Warn("C", "w1", "")
	l.Warn("C", "w2", "")
	l.Warn("C", "w3", "")
	l.Info("C", "i1", "")

	s := l.Summary()
	if s.Total != 7 || s.Pass != 2 || s.Fail != 1 || s.Warning != 3 || s.Info != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Total != s.Pass+s.Fail+s.Warning+s.Info {
		t.Errorf("summary invariant violated: %+v", s)
	}
}

func TestLogSummaryRecomputed(t *testing.T) {
	l := NewLog()
	l.Pass("C", "p1", "")

	first := l.Summary()
	l.Fail("C", "f1", "")
	second := l.Summary()

	if first.Total != 1 {
		t.Errorf("first summary Total = %d, want 1", first.Total)
	}
	if second.Total != 2 || second.Fail != 1 {
		t.Errorf("summary must be recomputed per query, got %+v", second)
	}
}

func TestLogClear(t *testing.T) {
	l := NewLog()
	l.Pass("C", "p1", "")
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Clear should empty the log, got %d records", l.Len())
	}
	if s := l.Summary(); s.Total != 0 {
		t.Errorf("summary after Clear should be zero, got %+v", s)
	}
}
