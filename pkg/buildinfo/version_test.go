package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, Name+"/"+Version) {
		t.Errorf("UserAgent() = %q", ua)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "commit: "+Commit) {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.HasPrefix(String(), "version: "+Version) {
		t.Errorf("String() = %q", String())
	}
}
