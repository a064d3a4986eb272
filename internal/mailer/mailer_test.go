package mailer

import (
	"net/smtp"
	"reflect"
	"strings"
	"testing"
)

func TestBuildMIMEStructure(t *testing.T) {
	body := string(BuildMIME("digest@example.com", []string{"a@example.com", "b@example.com"}, Message{
		Subject:  "Daily News Digest",
		HTMLBody: "<html><body>hello</body></html>",
		TextBody: "hello",
	}))

	for _, want := range []string{
		"From: digest@example.com",
		"To: a@example.com, b@example.com",
		"Subject:",
		"multipart/alternative",
		"text/plain; charset=utf-8",
		"text/html; charset=utf-8",
		"<html><body>hello</body></html>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("MIME body missing %q", want)
		}
	}

	if !strings.HasSuffix(strings.TrimSpace(body), "--") {
		t.Error("MIME body missing closing boundary")
	}
}

func TestSendUsesConfiguredTransport(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string

	m := New(Config{
		Host: "smtp.example.com",
		Port: 587,
		From: "digest@example.com",
		To:   []string{"reader@example.com"},
	})
	m.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	if err := m.Send(Message{Subject: "s", TextBody: "t", HTMLBody: "<p>h</p>"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "digest@example.com" {
		t.Errorf("from = %q", gotFrom)
	}
	if !reflect.DeepEqual(gotTo, []string{"reader@example.com"}) {
		t.Errorf("to = %v", gotTo)
	}
}

func TestSendNoRecipients(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "digest@example.com"})
	m.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		t.Fatal("transport must not be called without recipients")
		return nil
	}
	if err := m.Send(Message{Subject: "s"}); err == nil {
		t.Error("expected error with no recipients")
	}
}

func TestParseRecipients(t *testing.T) {
	got := ParseRecipients(" a@example.com, b@example.com ,,c@example.com ")
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseRecipients = %v, want %v", got, want)
	}
	if ParseRecipients("") != nil {
		t.Error("empty input should yield nil")
	}
}
