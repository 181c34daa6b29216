package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/ini.v1"
)

// go-ini keeps its layout switches in package variables. This binary has no
// other go-ini user, so the store owns them: "key=value" lines, no padding.
func init() {
	ini.PrettyFormat = false
	ini.PrettyEqual = false
}

var (
	// ErrUnreadableLines is returned by IniStore.Set when the file holds lines
	// that would be lost by rewriting it.
	ErrUnreadableLines = errors.New("config file has unreadable lines")
	// ErrUnstorable is returned by IniStore.Set for a value that would not
	// read back unchanged.
	ErrUnstorable = errors.New("value cannot be stored in an INI file")
)

// Values are taken as written: no inline comments, no "\" line
// continuation, surrounding quotes kept. The first of duplicate keys wins and
// "=" is the only delimiter, as with the Windows profile functions.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	AllowShadows:            true,
	KeyValueDelimiters:      "=",
}

// IniStore is a Store backed by a [section]/key=value text file. The file is
// opened, read and closed on every call; nothing is cached between calls, so
// edits made by other programs are picked up on the next read.
//
// New files are written as UTF-16LE with a byte order mark. An existing file
// keeps the encoding it was found in.
//
// Names match exactly first, then ignoring case. A line the parser cannot
// read is skipped with a warning and does not affect the other keys.
type IniStore struct {
	path   string
	logger *slog.Logger
	warned bool
}

func NewIniStore(path string) *IniStore {
	return &IniStore{path: path, logger: slog.Default()}
}

// Path returns the file backing the store.
func (s *IniStore) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *IniStore) Exists() bool {
	fi, err := os.Stat(s.path)
	return err == nil && !fi.IsDir()
}

func (s *IniStore) Get(section, key string) (string, bool, error) {
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	if doc == nil {
		return "", false, nil
	}
	s.warnSkipped(doc)

	k := doc.lookup(section, key)
	if k == nil {
		return "", false, nil
	}
	if k.Name() != key || k.Section() != section {
		s.logger.Warn("config key matched ignoring case",
			"path", s.path, "want", section+"/"+key, "found", k.Section()+"/"+k.Name())
	}
	return k.Value(), true, nil
}

func (s *IniStore) Set(section, key, val string) error {
	if strings.ContainsAny(val, "\r\n") {
		return fmt.Errorf("%w: %s/%s: value spans lines", ErrUnstorable, section, key)
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc == nil {
		doc = &iniDoc{file: ini.Empty(loadOptions), enc: utf16LE}
	}
	if len(doc.skipped) > 0 {
		return fmt.Errorf("%w: %s lines %v", ErrUnreadableLines, s.path, doc.skipped)
	}

	target := doc.lookup(section, key)
	if target == nil {
		sec := doc.section(section)
		if sec == nil {
			sec = doc.file.Section(section)
		}
		target = &iniKey{sec: sec, key: sec.Key(key)}
	}
	secName, keyName := target.Section(), target.Name()

	// go-ini's own quoting does not survive every value; fall back to a
	// triple-quoted value and keep whichever reads back unchanged.
	var text []byte
	for _, raw := range []string{val, `"""` + val + `"""`} {
		target.SetValue(raw)
		text, err = render(doc.file)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", s.path, err)
		}
		if readsBack(text, secName, keyName, val) {
			break
		}
		text = nil
	}
	if text == nil {
		return fmt.Errorf("%w: %s/%s = %q", ErrUnstorable, section, key, val)
	}

	out, _, err := transform.Bytes(doc.enc.NewEncoder(), text)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	return os.WriteFile(s.path, out, 0o644)
}

func (s *IniStore) warnSkipped(doc *iniDoc) {
	if len(doc.skipped) == 0 || s.warned {
		return
	}
	s.warned = true
	s.logger.Warn("ignoring unreadable config lines", "path", s.path, "lines", doc.skipped)
}

// iniDoc is one parsed read of the file.
type iniDoc struct {
	file    *ini.File
	enc     encoding.Encoding
	skipped []int
}

// load reads and parses the file. A missing file yields a nil document and
// no error.
func (s *IniStore) load() (*iniDoc, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", s.path, err)
	}
	enc := detectEncoding(data)
	text, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", s.path, err)
	}
	f, skipped, err := parseINI(text)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", s.path, err)
	}
	return &iniDoc{file: f, enc: enc, skipped: skipped}, nil
}

// parseINI loads text after blanking every line go-ini cannot read on its own:
// an unclosed section, a line without "=", or a value opening a quote it
// never closes, which would otherwise swallow the lines after it. skipped
// holds the 1-based numbers of the blanked lines.
func parseINI(text []byte) (*ini.File, []int, error) {
	lines := bytes.Split(text, []byte("\n"))
	var skipped []int
	for i, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		one := append(append([]byte(nil), line...), '\n')
		if _, err := ini.LoadSources(loadOptions, one); err != nil {
			skipped = append(skipped, i+1)
			lines[i] = nil
		}
	}
	f, err := ini.LoadSources(loadOptions, bytes.Join(lines, []byte("\n")))
	if err != nil {
		return nil, nil, err
	}
	return f, skipped, nil
}

func render(f *ini.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readsBack(text []byte, section, key, want string) bool {
	f, skipped, err := parseINI(text)
	if err != nil || len(skipped) > 0 {
		return false
	}
	k := (&iniDoc{file: f}).lookup(section, key)
	return k != nil && k.Value() == want
}

// section finds name exactly, then ignoring case.
func (d *iniDoc) section(name string) *ini.Section {
	if sec, err := d.file.GetSection(name); err == nil {
		return sec
	}
	for _, sec := range d.file.Sections() {
		if strings.EqualFold(sec.Name(), name) {
			return sec
		}
	}
	return nil
}

// lookup finds key in section, each matched exactly first and then ignoring
// case. Of duplicate keys the first in the file is returned.
func (d *iniDoc) lookup(section, key string) *iniKey {
	sec := d.section(section)
	if sec == nil {
		return nil
	}
	if sec.HasKey(key) {
		return &iniKey{sec: sec, key: sec.Key(key)}
	}
	for _, k := range sec.Keys() {
		if strings.EqualFold(k.Name(), key) {
			return &iniKey{sec: sec, key: k}
		}
	}
	return nil
}

// iniKey is a key together with the section it was found in.
type iniKey struct {
	sec *ini.Section
	key *ini.Key
}

func (k *iniKey) Section() string { return k.sec.Name() }
func (k *iniKey) Name() string { return k.key.Name() }
func (k *iniKey) Value() string { return k.key.Value() }
func (k *iniKey) SetValue(raw string) { k.key.SetValue(raw) }

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
)

// detectEncoding picks the file encoding from its byte order mark. Files
// without one are treated as UTF-8.
func detectEncoding(data []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return utf16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return utf16BE
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM
	default:
		return unicode.UTF8
	}
}
