package cachekey

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ParsePath splits an argument path into its segments.
//
//	"0.user.id"   -> ["0", "user", "id"]
//	"1[2].name"   -> ["1", "2", "name"]
//	"0['a.b'].c"  -> ["0", "a.b", "c"]
func ParsePath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &PathError{Path: path, Err: ErrInvalidPath}
	}

	var (
		segments []string
		current  strings.Builder
		pending  bool // a segment has started and must be flushed
	)

	flush := func() bool {
		if !pending {
			return false
		}
		segments = append(segments, current.String())
		current.Reset()
		pending = false
		return true
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '.':
			// "a..b", ".a" and "a." leave an empty segment behind
			if !flush() && (i == 0 || path[i-1] != ']') {
				return nil, &PathError{Path: path, Err: ErrInvalidPath}
			}
			if i == len(path)-1 {
				return nil, &PathError{Path: path, Err: ErrInvalidPath}
			}
		case '[':
			flush()
			seg, next, ok := readBracket(path, i+1)
			if !ok {
				return nil, &PathError{Path: path, Err: ErrInvalidPath}
			}
			segments = append(segments, seg)
			i = next
		case ']':
			return nil, &PathError{Path: path, Err: ErrInvalidPath}
		default:
			current.WriteByte(c)
			pending = true
		}
	}
	flush()

	if len(segments) == 0 {
		return nil, &PathError{Path: path, Err: ErrInvalidPath}
	}
	return segments, nil
}

// readBracket reads a bracket segment starting just after '['. It returns the
// segment and the index of the closing ']'.
func readBracket(path string, start int) (string, int, bool) {
	if start >= len(path) {
		return "", 0, false
	}

	if q := path[start]; q == '\'' || q == '"' {
		var sb strings.Builder
		for i := start + 1; i < len(path); i++ {
			c := path[i]
			if c == '\\' && i+1 < len(path) {
				i++
				sb.WriteByte(path[i])
				continue
			}
			if c == q {
				if i+1 >= len(path) || path[i+1] != ']' {
					return "", 0, false
				}
				return sb.String(), i + 1, true
			}
			sb.WriteByte(c)
		}
		return "", 0, false
	}

	end := strings.IndexByte(path[start:], ']')
	if end <= 0 {
		return "", 0, false
	}
	seg := strings.TrimSpace(path[start : start+end])
	if seg == "" {
		return "", 0, false
	}
	return seg, start + end, true
}

// Resolve returns the value at path inside args. The bool is false when the
// location does not exist.
func Resolve(args []any, path string) (any, bool, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}

	v := reflect.ValueOf(args)
	for _, seg := range segments {
		var ok bool
		v, ok = step(v, seg)
		if !ok {
			return nil, false, nil
		}
	}

	if !v.IsValid() {
		return nil, true, nil
	}
	if !v.CanInterface() {
		// reached through an unexported embedded field
		return nil, false, nil
	}
	return v.Interface(), true, nil
}

// step descends one segment into v.
func step(v reflect.Value, seg string) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	switch v.Kind() {
	case reflect.Map:
		key, ok := mapKey(v.Type().Key(), seg)
		if !ok {
			return reflect.Value{}, false
		}
		mv := v.MapIndex(key)
		if !mv.IsValid() {
			return reflect.Value{}, false
		}
		return mv, true

	case reflect.Slice, reflect.Array:
		idx, ok := index(seg)
		if !ok || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true

	case reflect.Struct:
		return field(v, seg)

	default:
		return reflect.Value{}, false
	}
}

func mapKey(t reflect.Type, seg string) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(seg).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(seg, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(seg, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Interface:
		if reflect.TypeOf(seg).Implements(t) {
			return reflect.ValueOf(seg), true
		}
	}
	return reflect.Value{}, false
}

// index accepts plain decimal digits only ("+1" and "-1" are not indexes).
func index(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}

// field matches json tag names first, then exported Go field names.
// Tag names promoted from embedded structs resolve as encoding/json
// flattens them.
func field(v reflect.Value, seg string) (reflect.Value, bool) {
	index, ok := jsonFieldIndex(v.Type(), seg)
	if !ok {
		sf, found := v.Type().FieldByName(seg)
		if !found || !sf.IsExported() {
			return reflect.Value{}, false
		}
		index = sf.Index
	}
	fv, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	return fv, true
}

// jsonFieldIndex finds the field encoding/json would emit under name,
// searching embedded structs breadth first. The shallowest match wins and
// two matches at the same depth cancel out.
func jsonFieldIndex(t reflect.Type, name string) ([]int, bool) {
	type level struct {
		typ   reflect.Type
		index []int
	}
	current := []level{{typ: t}}
	visited := map[reflect.Type]bool{}

	for len(current) > 0 {
		var (
			next  []level
			match []int
			count int
		)
		for _, l := range current {
			if visited[l.typ] {
				continue
			}
			visited[l.typ] = true

			for i := 0; i < l.typ.NumField(); i++ {
				sf := l.typ.Field(i)
				if !sf.IsExported() {
					continue
				}
				tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
				if tag == "-" {
					continue
				}
				index := append(slices.Clone(l.index), i)

				if sf.Anonymous && tag == "" {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if ft.Kind() == reflect.Struct {
						next = append(next, level{typ: ft, index: index})
						continue
					}
				}
				if tag == name {
					match = index
					count++
				}
			}
		}
		switch {
		case count == 1:
			return match, true
		case count > 1:
			return nil, false
		}
		current = next
	}
	return nil, false
}

// serializable reports whether a resolved value can appear in a JSON key.
func serializable(value any) bool {
	v := reflect.ValueOf(value)
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return false
	}
	return true
}
