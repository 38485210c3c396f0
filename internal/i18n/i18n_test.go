package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func mustLoad(t *testing.T) *Bundle {
	t.Helper()
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	return b
}

func TestLoadEmbedded(t *testing.T) {
	b := mustLoad(t)
	tags := b.Supported()
	if len(tags) < 2 {
		t.Fatalf("Expected at least 2 locales, got %v", tags)
	}
	if tags[0].String() != BaseLocale {
		t.Errorf("Expected base locale first, got %s", tags[0])
	}
	for _, tag := range tags[1:] {
		if missing := b.Missing(tag); len(missing) > 0 {
			t.Errorf("locale %s is missing keys: %v", tag, missing)
		}
	}
}

func TestPrinter(t *testing.T) {
	b := mustLoad(t)

	en := b.Printer(language.MustParse("en-US"))
	if got := en.T("progress.level", 3, 10); got != "LEVEL 3/10" {
		t.Errorf("Expected 'LEVEL 3/10', got '%s'", got)
	}
	if got := en.T("no.such.key"); got != "no.such.key" {
		t.Errorf("Expected unknown key to print as itself, got '%s'", got)
	}
	if en.Dir() != "ltr" {
		t.Errorf("Expected ltr, got %s", en.Dir())
	}

	ar := b.Printer(language.Arabic)
	if got := ar.T("app.title"); got == "Space Explorer" || got == "app.title" {
		t.Errorf("Expected translated title, got '%s'", got)
	}
	if ar.Dir() != "rtl" {
		t.Errorf("Expected rtl, got %s", ar.Dir())
	}
}

func TestResolveTag(t *testing.T) {
	b := mustLoad(t)
	fallback := language.MustParse(BaseLocale)

	tests := []struct {
		name    string
		url     string
		cookie  string
		accept  string
		want    string
		persist bool
	}{
		{name: "default", url: "/", want: "en-US"},
		{name: "query", url: "/?lang=ar", want: "ar", persist: true},
		{name: "cookie", url: "/", cookie: "ar", want: "ar"},
		{name: "accept language", url: "/", accept: "ar-EG,ar;q=0.9", want: "ar"},
		{name: "unsupported accept", url: "/", accept: "ja-JP", want: "en-US"},
		{name: "query wins over cookie", url: "/?lang=en-US", cookie: "ar", want: "en-US", persist: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			tag, persist := b.ResolveTag(req, fallback)
			base, _ := tag.Base()
			wantBase, _ := language.MustParse(tt.want).Base()
			if base != wantBase {
				t.Errorf("Expected %s, got %s", tt.want, tag)
			}
			if persist != tt.persist {
				t.Errorf("Expected persist=%v, got %v", tt.persist, persist)
			}
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	SetLanguageCookie(rr, language.Arabic)
	if got := rr.Header().Get("Set-Cookie"); !strings.Contains(got, LangCookieName+"=ar") {
		t.Errorf("Expected language cookie, got '%s'", got)
	}
}

func TestLoadFromFS_Errors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
		want string
	}{
		{
			name: "empty",
			fs:   fstest.MapFS{},
			want: "no catalog files",
		},
		{
			name: "no base locale",
			fs: fstest.MapFS{
				"locales/ar/ui.yaml": {Data: []byte("locale: ar\nmessages:\n  a: b\n")},
			},
			want: "base locale",
		},
		{
			name: "locale mismatch",
			fs: fstest.MapFS{
				"locales/en-US/ui.yaml": {Data: []byte("locale: ar\nmessages:\n  a: b\n")},
			},
			want: "must match path locale",
		},
		{
			name: "duplicate key",
			fs: fstest.MapFS{
				"locales/en-US/a.yaml": {Data: []byte("locale: en-US\nmessages:\n  k: one\n")},
				"locales/en-US/b.yaml": {Data: []byte("locale: en-US\nmessages:\n  k: two\n")},
			},
			want: "duplicate key",
		},
		{
			name: "bad yaml",
			fs: fstest.MapFS{
				"locales/en-US/ui.yaml": {Data: []byte("locale: [unclosed\n")},
			},
			want: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fs)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
