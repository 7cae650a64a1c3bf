package format

import (
	"context"
	"fmt"
	"html"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/plazakit/plaza/pkg/locale"
)

// FormatString renders a message template against substitution data.
// Placeholders take the form {Field} or {Field,format,arg,arg}; "{{"
// escapes a literal brace. Malformed placeholders pass through
// verbatim, and substituted values are never re-interpreted.
func (f *Formatter) FormatString(ctx context.Context, template string, data M) string {
	var out strings.Builder
	out.Grow(len(template) + 32)

	i := 0
	for i < len(template) {
		c := template[i]
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}

		if i+1 < len(template) && template[i+1] == '{' {
			out.WriteByte('{')
			i += 2
			continue
		}

		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			out.WriteString(template[i:])
			break
		}

		inner := template[i+1 : i+1+end]
		if !validPlaceholder(inner) {
			if j := strings.IndexByte(inner, '{'); j >= 0 {
				// Restart scanning at the embedded brace.
				out.WriteString(template[i : i+1+j])
				i += 1 + j
				continue
			}
			out.WriteString(template[i : i+end+2])
			i += end + 2
			continue
		}

		out.WriteString(f.eval(ctx, inner, data))
		i += end + 2
	}

	return out.String()
}

// validPlaceholder rejects empty bodies, leading whitespace, and
// embedded braces; those render verbatim.
func validPlaceholder(inner string) bool {
	if inner == "" || strings.ContainsRune(inner, '{') {
		return false
	}
	r, _ := utf8.DecodeRuneInString(inner)
	return !unicode.IsSpace(r)
}

func (f *Formatter) eval(ctx context.Context, inner string, data M) string {
	parts := strings.Split(inner, ",")
	field := strings.TrimSpace(parts[0])

	rawFormat := ""
	if len(parts) > 1 {
		rawFormat = strings.TrimSpace(parts[1])
	}
	format := strings.ToLower(rawFormat)

	args := make([]string, 0, max(0, len(parts)-2))
	for _, a := range parts[2:] {
		args = append(args, strings.TrimSpace(a))
	}

	value, found := lookup(field, data)
	if !found {
		switch format {
		case "url", "exurl", "number", "plural":
			// These formats can fall back to the field literal.
		default:
			return ""
		}
	}

	switch format {
	case "":
		return toString(value)
	case "date":
		return f.formatDate(value, argAt(args, 0))
	case "time":
		t, ok := toTime(value)
		if !ok {
			return ""
		}
		return f.locale.Time(t)
	case "number":
		return f.formatNumber(value, field, found, args)
	case "currency":
		n, ok := toNumber(value)
		if !ok {
			return toString(value)
		}
		return f.locale.Currency(n)
	case "percent":
		n, ok := toNumber(value)
		if !ok {
			return toString(value)
		}
		return f.locale.Percent(n)
	case "plural":
		return f.formatPlural(value, field, found, args)
	case "gender":
		return f.formatGender(ctx, value, args)
	case "user", "you", "his", "her", "your":
		return f.formatUsers(ctx, rawFormat, value)
	case "url":
		return f.siteURL(urlPath(field, value, found), strings.EqualFold(argAt(args, 0), "domain"))
	case "exurl":
		return f.externalURL(urlPath(field, value, found))
	case "urlencode":
		return url.QueryEscape(toString(value))
	case "rawurlencode":
		return url.PathEscape(toString(value))
	case "html", "htmlspecialchars":
		return html.EscapeString(toString(value))
	case "text":
		return PlainText(toString(value))
	case "t":
		code := toString(value)
		return f.translator.T(code, code)
	default:
		// Unknown formats render nothing rather than leaking raw data.
		return ""
	}
}

func (f *Formatter) formatDate(value any, style string) string {
	t, ok := toTime(value)
	if !ok {
		return ""
	}

	switch strings.ToLower(style) {
	case "", "short":
		return f.locale.Date(t, locale.DateShort)
	case "medium":
		return f.locale.Date(t, locale.DateMedium)
	case "long":
		return f.locale.Date(t, locale.DateLong)
	default:
		// Any other style is a Go time layout.
		return t.Format(style)
	}
}

func (f *Formatter) formatNumber(value any, field string, found bool, args []string) string {
	src := value
	if !found {
		src = field
	}
	n, ok := toNumber(src)
	if !ok {
		return toString(value)
	}

	sub := argAt(args, 0)
	switch strings.ToLower(sub) {
	case "":
		return f.locale.Integer(n)
	case "currency":
		return f.locale.Currency(n)
	case "percent":
		return f.locale.Percent(n)
	case "integer":
		s := strconv.FormatInt(int64(math.Round(n)), 10)
		if width, err := strconv.Atoi(argAt(args, 1)); err == nil && len(s) < width {
			s = strings.Repeat("0", width-len(s)) + s
		}
		return s
	default:
		if decimals, err := strconv.Atoi(sub); err == nil {
			return f.locale.NumberN(n, decimals)
		}
		return f.locale.Integer(n)
	}
}

func (f *Formatter) formatPlural(value any, field string, found bool, args []string) string {
	var (
		n  float64
		ok bool
	)

	switch {
	case !found:
		n, ok = toNumber(field)
	case isList(value):
		n, ok = float64(reflect.ValueOf(value).Len()), true
	case strings.HasSuffix(strings.ToLower(field), "userid"):
		// A single user id placeholder counts one user, whatever the id.
		n, ok = 1, true
	default:
		n, ok = toNumber(value)
	}
	if !ok {
		return toString(value)
	}

	singular := argAt(args, 0)
	if singular == "" {
		return f.locale.Integer(n)
	}
	plural := argAt(args, 1)
	if plural == "" {
		plural = singular + "s"
	}

	return f.pluralWord(n, singular, plural)
}

// pluralWord selects and translates a singular or plural form.
// Inline forms reference the count as %s, since braces inside a
// placeholder would terminate it; catalog translations may use the
// {{count}} placeholder instead.
func (f *Formatter) pluralWord(n float64, singular, plural string) string {
	out := f.translator.Plural(int(math.Round(n)), singular, plural)
	if strings.Contains(out, "%s") {
		out = strings.ReplaceAll(out, "%s", f.locale.Integer(n))
	}
	return out
}

func (f *Formatter) formatGender(ctx context.Context, value any, args []string) string {
	gender := ""
	switch v := value.(type) {
	case *User:
		if v != nil {
			gender = v.Gender
		}
	case User:
		gender = v.Gender
	default:
		if id, ok := toInt64(value); ok && id > 0 && f.users != nil {
			if u, err := f.users.UserByID(ctx, id); err == nil && u != nil {
				gender = u.Gender
			}
		}
	}

	switch strings.ToLower(gender) {
	case "m", "male":
		return argAt(args, 0)
	case "f", "female":
		return argAt(args, 1)
	default:
		return argAt(args, 2)
	}
}

// formatUsers renders one or more users as profile anchors, joining
// lists with commas and "and", and collapsing long lists into
// "and N others".
func (f *Formatter) formatUsers(ctx context.Context, rawFormat string, value any) string {
	users := f.resolveUsers(ctx, value)
	if len(users) == 0 {
		return ""
	}

	capitalized := isCapitalized(rawFormat)
	format := strings.ToLower(rawFormat)

	var out strings.Builder
	count := len(users)
	for i, u := range users {
		if i >= f.maxUserList && count > f.maxUserList+1 {
			remaining := count - i
			out.WriteString(", and ")
			out.WriteString(f.pluralWord(float64(remaining), "%s other", "%s others"))
			break
		}
		if i > 0 {
			if i == count-1 {
				out.WriteString(" and ")
			} else {
				out.WriteString(", ")
			}
		}
		out.WriteString(f.userAnchor(u, format, capitalized && i == 0))
	}

	return out.String()
}

// userAnchor renders one user as a profile link, substituting "you"
// and pronouns for the viewing user.
func (f *Formatter) userAnchor(u *User, format string, capitalized bool) string {
	display := u.Name
	isViewer := f.viewerID != 0 && u.ID == f.viewerID

	switch format {
	case "you":
		if isViewer {
			display = f.translateWord("you", capitalized)
		}
	case "his", "her", "your":
		if isViewer {
			display = f.translateWord("your", capitalized)
		} else {
			switch strings.ToLower(u.Gender) {
			case "m", "male":
				display = f.translateWord("his", capitalized)
			case "f", "female":
				display = f.translateWord("her", capitalized)
			default:
				display = f.translateWord("their", capitalized)
			}
		}
	}

	if f.site == nil {
		return html.EscapeString(display)
	}

	path := "/profile/" + strconv.FormatInt(u.ID, 10) + "/" + url.PathEscape(u.Name)
	href := f.site.URL(path, false)
	return `<a class="user" href="` + html.EscapeString(href) + `">` + html.EscapeString(display) + `</a>`
}

// translateWord translates a substitution word through the "Format x"
// message code, preserving requested capitalization in both the code
// and the fallback so definition files can override either casing.
func (f *Formatter) translateWord(word string, capitalized bool) string {
	if capitalized {
		word = upperFirst(word)
	}
	return f.translator.T("Format "+word, word)
}

func (f *Formatter) resolveUsers(ctx context.Context, value any) []*User {
	switch v := value.(type) {
	case *User:
		if v == nil {
			return nil
		}
		return []*User{v}
	case User:
		return []*User{&v}
	case []*User:
		return v
	case []User:
		users := make([]*User, 0, len(v))
		for i := range v {
			users = append(users, &v[i])
		}
		return users
	case map[string]any:
		if u := userFromMap(v); u != nil {
			return []*User{u}
		}
		return nil
	}

	ids := toInt64List(value)
	if len(ids) == 0 || f.users == nil {
		return nil
	}

	users := make([]*User, 0, len(ids))
	for _, id := range ids {
		u, err := f.users.UserByID(ctx, id)
		if err != nil || u == nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func userFromMap(m map[string]any) *User {
	id, ok := toInt64(m["UserID"])
	if !ok || id <= 0 {
		return nil
	}
	u := &User{ID: id}
	if name, ok := m["Name"].(string); ok {
		u.Name = name
	}
	if gender, ok := m["Gender"].(string); ok {
		u.Gender = gender
	}
	return u
}

func (f *Formatter) siteURL(path string, withDomain bool) string {
	if f.site == nil {
		return path
	}
	return f.site.URL(path, withDomain)
}

func (f *Formatter) externalURL(path string) string {
	if f.site == nil {
		return path
	}
	return f.site.ExternalURL(path)
}

// urlPath picks the path for url and exurl placeholders: fields that
// look like paths are literals, otherwise the field's value is used.
func urlPath(field string, value any, found bool) string {
	if strings.Contains(field, "/") {
		return field
	}
	if !found {
		return ""
	}
	return toString(value)
}

// lookup resolves a dotted path through nested maps and structs.
// A present-but-nil value counts as missing.
func lookup(path string, data M) (any, bool) {
	if data == nil {
		return nil, false
	}

	var cur any = data
	for part := range strings.SplitSeq(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]string:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			rv := reflect.ValueOf(cur)
			if rv.Kind() == reflect.Pointer {
				rv = rv.Elem()
			}
			if rv.Kind() != reflect.Struct {
				return nil, false
			}
			fv := rv.FieldByName(part)
			if !fv.IsValid() || !fv.CanInterface() {
				return nil, false
			}
			cur = fv.Interface()
		}
	}

	if cur == nil {
		return nil, false
	}
	return cur, true
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toTime accepts time values directly, Unix timestamps, and the
// common date string layouts stored by older installations.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		if epoch, ok := toInt64(v); ok && epoch > 0 {
			return time.Unix(epoch, 0).UTC(), true
		}
		return time.Time{}, false
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toInt64(v any) (int64, bool) {
	n, ok := toNumber(v)
	if !ok || n != math.Trunc(n) {
		return 0, false
	}
	return int64(n), true
}

func toInt64List(value any) []int64 {
	if value == nil {
		return nil
	}
	if id, ok := toInt64(value); ok {
		return []int64{id}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	ids := make([]int64, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if id, ok := toInt64(rv.Index(i).Interface()); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func isList(value any) bool {
	if value == nil {
		return false
	}
	k := reflect.ValueOf(value).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
