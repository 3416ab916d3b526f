// Package bindgen turns the webui C header into the Go declarations used by
// internal/ffi: one purego-compatible func field per exported function and
// one constant per enum member.
package bindgen

import (
	"bytes"
	"fmt"
	"go/format"
	"regexp"
	"strconv"
	"strings"
)

// Header is the parsed subset of webui.h that bindings are generated from.
type Header struct {
	Enums     []Enum
	Functions []Function
}

// Enum is a C enum with resolved member values.
type Enum struct {
	Name    string
	Members []EnumMember
}

type EnumMember struct {
	Name  string
	Value int
}

// Function is one WEBUI_EXPORT declaration.
type Function struct {
	Name   string
	Return string // normalized C type, "void" for none
	Params []Param
}

type Param struct {
	Name string
	Type string // normalized C type, "callback" for function pointers
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	enumDecl     = regexp.MustCompile(`(?s)(typedef\s+)?enum\s*(\w*)\s*\{([^}]*)\}\s*(\w*)\s*;`)
	exportDecl   = regexp.MustCompile(`(?s)WEBUI_EXPORT\s+(.+?)\b(webui_\w+)\s*\((.*)\)\s*$`)
	spaces       = regexp.MustCompile(`\s+`)
	fnPointer    = regexp.MustCompile(`\(\s*\*\s*(\w+)\s*\)`)
)

// Parse extracts enums and exported functions from header source.
func Parse(src []byte) (*Header, error) {
	text := blockComment.ReplaceAllString(string(src), " ")
	text = lineComment.ReplaceAllString(text, "")
	text = stripPreprocessor(text)

	h := &Header{}
	for _, m := range enumDecl.FindAllStringSubmatch(text, -1) {
		name := m[2]
		if m[4] != "" {
			name = m[4]
		}
		if !strings.HasPrefix(name, "webui") {
			continue
		}
		e, err := parseEnum(name, m[3])
		if err != nil {
			return nil, err
		}
		h.Enums = append(h.Enums, e)
	}

	for _, stmt := range strings.Split(text, ";") {
		stmt = strings.TrimSpace(stmt)
		if !strings.HasPrefix(stmt, "WEBUI_EXPORT") {
			continue
		}
		fn, err := parseFunction(stmt)
		if err != nil {
			return nil, err
		}
		h.Functions = append(h.Functions, fn)
	}

	if len(h.Functions) == 0 {
		return nil, fmt.Errorf("bindgen: no WEBUI_EXPORT declarations found")
	}
	return h, nil
}

func stripPreprocessor(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func parseEnum(name, body string) (Enum, error) {
	e := Enum{Name: name}
	next := 0
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		member, value, hasValue := strings.Cut(item, "=")
		member = strings.TrimSpace(member)
		if hasValue {
			v, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Enum{}, fmt.Errorf("bindgen: enum %s member %s: %w", name, member, err)
			}
			next = v
		}
		e.Members = append(e.Members, EnumMember{Name: member, Value: next})
		next++
	}
	return e, nil
}

func parseFunction(stmt string) (Function, error) {
	stmt = spaces.ReplaceAllString(stmt, " ")
	m := exportDecl.FindStringSubmatch(stmt)
	if m == nil {
		return Function{}, fmt.Errorf("bindgen: cannot parse declaration %q", stmt)
	}
	fn := Function{Name: m[2], Return: normalizeType(m[1])}
	for _, raw := range splitParams(m[3]) {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "void" {
			continue
		}
		p, err := parseParam(raw)
		if err != nil {
			return Function{}, fmt.Errorf("bindgen: %s: %w", fn.Name, err)
		}
		fn.Params = append(fn.Params, p)
	}
	return fn, nil
}

// splitParams splits on commas outside nested parentheses.
func splitParams(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func parseParam(raw string) (Param, error) {
	if m := fnPointer.FindStringSubmatch(raw); m != nil {
		return Param{Name: m[1], Type: "callback"}, nil
	}
	raw = strings.ReplaceAll(raw, "*", " * ")
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Param{}, fmt.Errorf("parameter %q has no name", raw)
	}
	name := fields[len(fields)-1]
	return Param{Name: name, Type: normalizeType(strings.Join(fields[:len(fields)-1], " "))}, nil
}

func normalizeType(t string) string {
	t = strings.ReplaceAll(t, "*", " * ")
	fields := strings.Fields(t)
	kept := fields[:0]
	for _, f := range fields {
		if f == "const" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.ReplaceAll(strings.Join(kept, " "), " *", "*")
}

// goType maps a normalized C type to the Go type purego passes it as.
func goType(c string, enums map[string]bool) (string, error) {
	if strings.HasSuffix(c, "*") || c == "callback" {
		return "uintptr", nil
	}
	switch c {
	case "size_t":
		return "uintptr", nil
	case "bool":
		return "bool", nil
	case "int":
		return "int32", nil
	case "unsigned int":
		return "uint32", nil
	case "long long int", "long long":
		return "int64", nil
	case "double":
		return "float64", nil
	}
	if enums[strings.TrimPrefix(c, "enum ")] {
		return "int32", nil
	}
	return "", fmt.Errorf("no Go mapping for C type %q", c)
}

var initialisms = map[string]string{
	"id":  "ID",
	"url": "URL",
	"tls": "TLS",
	"wv":  "WV",
}

var keywords = map[string]string{
	"func":  "fn",
	"type":  "typ",
	"range": "rng",
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FieldName converts webui_get_url to GetURL.
func FieldName(cname string) string {
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(cname, "webui_"), "_") {
		if v, ok := initialisms[part]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteString(capitalize(part))
	}
	return b.String()
}

// ConstName converts an enum member to a Go constant, e.g.
// (webui_event, WEBUI_EVENT_CONNECTED) to WebuiEventConnected.
func ConstName(enum, member string) string {
	if member == strings.ToUpper(member) {
		member = strings.ToLower(member)
	}
	member = strings.TrimPrefix(member, enum+"_")
	var b strings.Builder
	for _, part := range strings.Split(enum, "_") {
		b.WriteString(capitalize(part))
	}
	for _, part := range strings.Split(member, "_") {
		b.WriteString(capitalize(part))
	}
	return b.String()
}

func paramName(cname string) string {
	if v, ok := keywords[cname]; ok {
		return v
	}
	parts := strings.Split(cname, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

// Generate renders h as gofmt-ed Go source for package pkg.
func Generate(h *Header, pkg, version string) ([]byte, error) {
	enums := make(map[string]bool, len(h.Enums))
	for _, e := range h.Enums {
		enums[e.Name] = true
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by bindgen from webui.h (%s). DO NOT EDIT.\n\n", version)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	for _, e := range h.Enums {
		fmt.Fprintf(&buf, "// %s\nconst (\n", e.Name)
		for _, m := range e.Members {
			fmt.Fprintf(&buf, "%s = %d\n", ConstName(e.Name, m.Name), m.Value)
		}
		buf.WriteString(")\n\n")
	}

	buf.WriteString("// Lib holds one function per exported webui entry point.\ntype Lib struct {\n")
	for _, fn := range h.Functions {
		sig, err := signature(fn, enums)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%s %s\n", FieldName(fn.Name), sig)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("func (l *Lib) symbols() []symbol {\nreturn []symbol{\n")
	for _, fn := range h.Functions {
		fmt.Fprintf(&buf, "{%q, &l.%s},\n", fn.Name, FieldName(fn.Name))
	}
	buf.WriteString("}\n}\n")

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("bindgen: formatting output: %w", err)
	}
	return out, nil
}

func signature(fn Function, enums map[string]bool) (string, error) {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		t, err := goType(p.Type, enums)
		if err != nil {
			return "", fmt.Errorf("bindgen: %s(%s): %w", fn.Name, p.Name, err)
		}
		params = append(params, paramName(p.Name)+" "+t)
	}
	sig := "func(" + strings.Join(params, ", ") + ")"
	if fn.Return == "void" {
		return sig, nil
	}
	ret, err := goType(fn.Return, enums)
	if err != nil {
		return "", fmt.Errorf("bindgen: %s return: %w", fn.Name, err)
	}
	return sig + " " + ret, nil
}
