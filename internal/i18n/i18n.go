// Package i18n holds the screen copy for every supported locale and picks
// the locale for a request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the source locale every other catalog falls back to.
	BaseLocale = "en-US"
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the learner's language preference.
	LangCookieName = "space_lang"
)

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is the set of loaded locale catalogs.
type Bundle struct {
	tags     []language.Tag // BaseLocale first
	messages map[language.Tag]map[string]string
	builder  *catalog.Builder
	matcher  language.Matcher
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/<locale>/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	b := &Bundle{
		messages: map[language.Tag]map[string]string{},
		builder:  catalog.NewBuilder(catalog.Fallback(base)),
	}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[base]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	b.tags = append(b.tags, base)
	for tag := range b.messages {
		if tag != base {
			b.tags = append(b.tags, tag)
		}
	}
	sort.Slice(b.tags[1:], func(i, j int) bool { return b.tags[i+1].String() < b.tags[j+1].String() })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	dir := path[len("locales/"):]
	dir = dir[:strings.Index(dir, "/")]
	locale := strings.TrimSpace(file.Locale)
	if locale != dir {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", path, locale, dir)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", path, locale, err)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}
	msgs, ok := b.messages[tag]
	if !ok {
		msgs = map[string]string{}
		b.messages[tag] = msgs
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		msgs[key] = value
		if err := b.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: register %q: %w", path, key, err)
		}
	}
	return nil
}

// Supported returns the loaded locales, base locale first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Match returns the supported locale closest to the given preferences.
func (b *Bundle) Match(prefs ...language.Tag) language.Tag {
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.tags[0]
	}
	return b.tags[idx]
}

// Missing lists the keys the base locale has and locale lacks.
func (b *Bundle) Missing(locale language.Tag) []string {
	var out []string
	have := b.messages[locale]
	for key := range b.messages[b.tags[0]] {
		if _, ok := have[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// ResolveTag determines the locale for r: the lang query parameter, then the
// preference cookie, then Accept-Language, then fallback. The bool reports
// whether the query parameter chose it and should be persisted.
func (b *Bundle) ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return b.Match(tag), true
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, err := language.Parse(c.Value); err == nil {
			return b.Match(tag), false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return b.Match(tags...), false
		}
	}
	return b.Match(fallback), false
}

// SetLanguageCookie persists the selected locale on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Printer formats catalog messages for one locale.
type Printer struct {
	Tag language.Tag
	p   *message.Printer
}

func (b *Bundle) Printer(tag language.Tag) *Printer {
	return &Printer{Tag: tag, p: message.NewPrinter(tag, message.Catalog(b.builder))}
}

// T formats the message stored under key. Unknown keys print as themselves.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Dir is the text direction for the printer's locale, for the html dir attribute.
func (p *Printer) Dir() string {
	base, _ := p.Tag.Base()
	switch base.String() {
	case "ar", "he", "fa", "ur":
		return "rtl"
	default:
		return "ltr"
	}
}
