package termtable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// serializer writes a JSON-like rendering of a structured value. Unlike
// encoding/json it renders funcs, channels, symbols and big numbers, and
// reports cycles instead of recursing.
type serializer struct {
	indent string
	sb     strings.Builder
	seen   map[visit]struct{}
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

func serialize(v any, indent int) (string, error) {
	s := &serializer{
		indent: strings.Repeat(" ", indent),
		seen:   make(map[visit]struct{}),
	}
	if err := s.write(reflect.ValueOf(v), 0); err != nil {
		return "", err
	}
	return s.sb.String(), nil
}

func (s *serializer) newline(depth int) {
	s.sb.WriteByte('\n')
	for range depth {
		s.sb.WriteString(s.indent)
	}
}

// enter marks a reference value as being on the current path.
func (s *serializer) enter(v reflect.Value) (func(), error) {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.len = v.Len()
	}
	if _, ok := s.seen[key]; ok {
		return nil, fmt.Errorf("%w: %s refers to itself", ErrCyclicValue, v.Type())
	}
	s.seen[key] = struct{}{}
	return func() { delete(s.seen, key) }, nil
}

func (s *serializer) write(v reflect.Value, depth int) error {
	if !v.IsValid() {
		s.sb.WriteString("null")
		return nil
	}
	if v.CanInterface() {
		if done, err := s.writeSpecial(v.Interface(), depth); done || err != nil {
			return err
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			s.sb.WriteString("null")
			return nil
		}
		return s.write(v.Elem(), depth)
	case reflect.Pointer:
		if v.IsNil() {
			s.sb.WriteString("null")
			return nil
		}
		leave, err := s.enter(v)
		if err != nil {
			return err
		}
		defer leave()
		return s.write(v.Elem(), depth)
	case reflect.Bool:
		s.sb.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.sb.WriteString("null")
		} else {
			s.sb.WriteString(formatFloat(f, v.Type().Bits()))
		}
	case reflect.Complex64, reflect.Complex128:
		s.quote(fmt.Sprint(v.Complex()))
	case reflect.String:
		s.quote(v.String())
	case reflect.Func, reflect.Chan:
		if v.IsNil() {
			s.sb.WriteString("null")
			return nil
		}
		s.sb.WriteString("[" + v.Type().String() + "]")
	case reflect.Map:
		return s.writeMap(v, depth)
	case reflect.Slice:
		if v.IsNil() {
			s.sb.WriteString("null")
			return nil
		}
		leave, err := s.enter(v)
		if err != nil {
			return err
		}
		defer leave()
		return s.writeArray(v, depth)
	case reflect.Array:
		return s.writeArray(v, depth)
	case reflect.Struct:
		return s.writeStruct(v, depth)
	default:
		s.quote(fmt.Sprint(v.Interface()))
	}
	return nil
}

// writeSpecial handles types with a dedicated rendering.
func (s *serializer) writeSpecial(x any, depth int) (bool, error) {
	switch t := x.(type) {
	case Record:
		if t == nil {
			return false, nil
		}
		return true, s.writeRecord(t, depth)
	case time.Time:
		s.quote(t.UTC().Format(timeLayout))
	case time.Duration:
		s.quote(t.String())
	case Symbol:
		q := quoteJSON(string(t))
		s.sb.WriteString("Symbol(" + q[1:len(q)-1] + ")")
	case json.Number:
		s.sb.WriteString(t.String())
	case *big.Int:
		if t == nil {
			return false, nil
		}
		s.sb.WriteString(t.String())
	case *big.Float:
		if t == nil {
			return false, nil
		}
		s.sb.WriteString(t.Text('g', -1))
	case *big.Rat:
		if t == nil {
			return false, nil
		}
		s.quote(t.RatString())
	default:
		return false, nil
	}
	return true, nil
}

func (s *serializer) writeArray(v reflect.Value, depth int) error {
	n := v.Len()
	if n == 0 {
		s.sb.WriteString("[]")
		return nil
	}
	s.sb.WriteByte('[')
	for i := range n {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		s.newline(depth + 1)
		if err := s.write(v.Index(i), depth+1); err != nil {
			return err
		}
	}
	s.newline(depth)
	s.sb.WriteByte(']')
	return nil
}

type member struct {
	key   string
	value reflect.Value
}

func (s *serializer) writeObject(members []member, depth int) error {
	if len(members) == 0 {
		s.sb.WriteString("{}")
		return nil
	}
	s.sb.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		s.newline(depth + 1)
		s.quote(m.key)
		s.sb.WriteString(": ")
		if err := s.write(m.value, depth+1); err != nil {
			return err
		}
	}
	s.newline(depth)
	s.sb.WriteByte('}')
	return nil
}

func (s *serializer) writeMap(v reflect.Value, depth int) error {
	if v.IsNil() {
		s.sb.WriteString("null")
		return nil
	}
	leave, err := s.enter(v)
	if err != nil {
		return err
	}
	defer leave()

	members := make([]member, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		members = append(members, member{key: mapKey(iter.Key()), value: iter.Value()})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].key < members[j].key })
	return s.writeObject(members, depth)
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func (s *serializer) writeRecord(r Record, depth int) error {
	leave, err := s.enter(reflect.ValueOf(r))
	if err != nil {
		return err
	}
	defer leave()
	members := make([]member, len(r))
	for i, f := range r {
		members[i] = member{key: f.Key, value: reflect.ValueOf(&r[i].Value).Elem()}
	}
	return s.writeObject(members, depth)
}

func (s *serializer) writeStruct(v reflect.Value, depth int) error {
	t := v.Type()
	members := make([]member, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		omitEmpty := false
		if tag, ok := field.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			tagName, opts, _ := strings.Cut(tag, ",")
			if tagName != "" {
				name = tagName
			}
			omitEmpty = strings.Contains(","+opts+",", ",omitempty,")
		}
		fv := v.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		members = append(members, member{key: name, value: fv})
	}
	return s.writeObject(members, depth)
}

func (s *serializer) quote(str string) {
	s.sb.WriteString(quoteJSON(str))
}

func quoteJSON(str string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(str); err != nil {
		return strconv.Quote(str)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// jsonToken matches, in priority order: quoted strings, booleans, null,
// numbers, bracketed placeholders and symbols.
var jsonToken = regexp.MustCompile(`("(?:\\.|[^"\\])*")|(\btrue\b|\bfalse\b)|(\bnull\b)|(-?[0-9]+(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?)|(\[(?:func|chan|<-chan)\b.*\])|(Symbol\(.*?\))`)

var jsonTokenRoles = [...]Role{RoleString, RoleBoolean, RoleNull, RoleNumber, RoleFunction, RoleSymbol}

// highlight wraps the tokens of one serialized line in their role colors.
func (p Palette) highlight(line string) string {
	matches := jsonToken.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(line[last:m[0]])
		token := line[m[0]:m[1]]
		code := ""
		for g, role := range jsonTokenRoles {
			if m[2*(g+1)] >= 0 {
				code = p.Code(role)
				break
			}
		}
		if code == "" {
			sb.WriteString(token)
		} else {
			sb.WriteString(code + token + colorReset)
		}
		last = m[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}
