// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todolist/internal/service"
)

// Separator is printed between the task lines and the footer.
const Separator = "------------"

// FormatTask formats one task line.
// Format: "{N:>4}  [x] {TITLE}\n" with "[ ]" for open tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeTitle(task.Title))
}

// FormatFooter prints the separator and the task count.
func FormatFooter(w io.Writer, count int) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, countTasks(count))
}

// FormatSearchFooter prints the separator and "{matches} of {N tasks}".
func FormatSearchFooter(w io.Writer, matches, total int) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "%d of %s\n", matches, countTasks(total))
}

func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
