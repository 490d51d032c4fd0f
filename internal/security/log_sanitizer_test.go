package security

import (
	"strings"
	"testing"
)

// スクリプトタグが除去されることを検証
func TestLogSanitizer_RemovesScriptTags(t *testing.T) {
	s := NewLogSanitizer()

	got := s.Sanitize(`EventID=4688 <script>alert("xss")</script> ProcessName=cmd.exe`)
	if got == "" {
		t.Fatal("sanitized output should not be empty")
	}
	for _, forbidden := range []string{"<script>", "</script>"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("output still contains %q: %q", forbidden, got)
		}
	}
	if !strings.Contains(got, "ProcessName=cmd.exe") {
		t.Errorf("plain text content lost: %q", got)
	}
}

// プレーンテキストのログ行が変更されないことを検証
func TestLogSanitizer_PlainLogLine_Unchanged(t *testing.T) {
	s := NewLogSanitizer()

	line := "EventID=10 SourceImage=m64.exe TargetImage=lsass.exe GrantedAccess=0x1fffff"
	if got := s.Sanitize(line); got != line {
		t.Errorf("Sanitize(%q) = %q, want unchanged", line, got)
	}
}

// 空文字列に対して空文字列を返すことを検証
func TestLogSanitizer_EmptyInput_ReturnsEmpty(t *testing.T) {
	s := NewLogSanitizer()
	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

// 同一入力に対して同一出力を返すことを検証（冪等）
func TestLogSanitizer_Idempotent(t *testing.T) {
	s := NewLogSanitizer()

	input := `<img src=x onerror=alert(1)> LogonType=9 TargetUserName=Administrator`
	first := s.Sanitize(input)
	second := s.Sanitize(first)
	if first != second {
		t.Errorf("not idempotent: %q != %q", first, second)
	}
}
