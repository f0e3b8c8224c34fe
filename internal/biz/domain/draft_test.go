package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAudioPath(t *testing.T) {
	d := &Draft{Path: "/drafts/hr-draft-01.md"}
	if got := d.AudioPath(); got != "/drafts/hr-draft-01.mp3" {
		t.Errorf("expected /drafts/hr-draft-01.mp3, got %s", got)
	}

	d = &Draft{Path: "/drafts/notes-draft.txt"}
	if got := d.AudioPath(); got != "/drafts/notes-draft.mp3" {
		t.Errorf("expected /drafts/notes-draft.mp3, got %s", got)
	}
}

func TestSpeechTextShortContentUnchanged(t *testing.T) {
	content := strings.Repeat("a", 40)
	d := &Draft{Path: "hr-draft-01.md", Content: content}

	if got := d.SpeechText(); got != content {
		t.Errorf("short content should pass through unchanged")
	}
}

func TestSpeechTextAtLimitUnchanged(t *testing.T) {
	content := strings.Repeat("a", SpeechLimit)
	d := &Draft{Content: content}

	if got := d.SpeechText(); got != content {
		t.Errorf("content at the limit should pass through unchanged")
	}
}

func TestSpeechTextLongContentTruncated(t *testing.T) {
	d := &Draft{Content: strings.Repeat("a", 6000)}

	got := d.SpeechText()
	if n := utf8.RuneCountInString(got); n > SpeechLimit {
		t.Errorf("truncated speech text has %d chars, want <= %d", n, SpeechLimit)
	}
	if !strings.HasSuffix(got, "... [content truncated for audio]") {
		t.Errorf("truncated speech text should end with the truncation marker")
	}
}

func TestCardBodyTruncation(t *testing.T) {
	short := &Draft{Content: "hello"}
	if got := short.CardBody(); got != "hello" {
		t.Errorf("short body should pass through unchanged")
	}

	long := &Draft{Content: strings.Repeat("b", 3000)}
	got := long.CardBody()
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long body should end with ellipsis")
	}
	if n := utf8.RuneCountInString(got); n != CardBodyLimit+3 {
		t.Errorf("long body length = %d, want %d", n, CardBodyLimit+3)
	}
}

func TestBuildApprovalCard(t *testing.T) {
	d := &Draft{
		Path:    "/drafts/hr-draft-01.md",
		Content: strings.Repeat("a", 40),
	}

	card := d.BuildApprovalCard("DONE", "THUMBSDOWN")
	if card.Title != "New Blog Draft: hr-draft-01.md" {
		t.Errorf("unexpected title: %s", card.Title)
	}
	if card.FileName != "hr-draft-01.md" {
		t.Errorf("unexpected file name: %s", card.FileName)
	}
	if card.CharCount != 40 {
		t.Errorf("expected 40 characters, got %d", card.CharCount)
	}
	if !strings.Contains(card.Footer, "DONE") || !strings.Contains(card.Footer, "THUMBSDOWN") {
		t.Errorf("footer should name both reaction keys: %s", card.Footer)
	}
}
