package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/abelbrown/newsagent/internal/agent"
	"github.com/abelbrown/newsagent/internal/model"
)

func TestRenderSummary(t *testing.T) {
	res := &agent.Result{
		OutputPath: "output/latest.json",
		Entries: []model.Entry{
			{Title: "a", Category: "Macro", Urgency: "High"},
			{Title: "b", Category: "Macro", Urgency: "Medium"},
			{Title: "c", Category: "Other", Urgency: "Medium"},
		},
		Feeds: []agent.FeedResult{
			{URL: "http://ok"},
			{URL: "http://bad", Err: errors.New("timeout")},
		},
	}

	out := Render(res)

	for _, want := range []string{
		"Wrote 3 items to output/latest.json",
		"Macro",
		"Other",
		"1 of 2 feeds failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Earnings") {
		t.Errorf("categories with no entries should be omitted:\n%s", out)
	}
}

func TestRenderEmptyRun(t *testing.T) {
	res := &agent.Result{OutputPath: "out.json"}

	out := Render(res)
	if !strings.Contains(out, "Wrote 0 items to out.json") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "failed") {
		t.Errorf("no failures expected: %q", out)
	}
}
