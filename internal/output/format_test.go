package output

import (
	"bytes"
	"testing"

	"todolist/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{Title: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"completed", 12, service.Task{Title: "Walk dog", Completed: true}, "  12  [x] Walk dog\n"},
		{"empty title", 3, service.Task{Title: "   "}, "   3  [ ] (untitled)\n"},
		{"multiline title", 4, service.Task{Title: "line one\r\nline two"}, "   4  [ ] line one  line two\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatFooter(t *testing.T) {
	for count, want := range map[int]string{
		0: "------------\n0 tasks\n",
		1: "------------\n1 task\n",
		7: "------------\n7 tasks\n",
	} {
		var buf bytes.Buffer
		FormatFooter(&buf, count)
		if buf.String() != want {
			t.Errorf("count %d: expected %q, got %q", count, want, buf.String())
		}
	}
}

func TestFormatSearchFooter(t *testing.T) {
	var buf bytes.Buffer
	FormatSearchFooter(&buf, 2, 30)
	want := "------------\n2 of 30 tasks\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
