package cachekey

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []string
		wantErr bool
	}{
		{"single index", "0", []string{"0"}, false},
		{"dotted", "0.user.id", []string{"0", "user", "id"}, false},
		{"bracket index", "1[2].name", []string{"1", "2", "name"}, false},
		{"leading bracket", "[0].id", []string{"0", "id"}, false},
		{"single quoted", "0['a.b'].c", []string{"0", "a.b", "c"}, false},
		{"double quoted", `0["x"]`, []string{"0", "x"}, false},
		{"escaped quote", `0['it\'s']`, []string{"0", "it's"}, false},
		{"consecutive brackets", "0[1][2]", []string{"0", "1", "2"}, false},
		{"empty", "", nil, true},
		{"whitespace", "  ", nil, true},
		{"double dot", "0..id", nil, true},
		{"leading dot", ".0", nil, true},
		{"trailing dot", "0.", nil, true},
		{"unterminated bracket", "0[1", nil, true},
		{"empty bracket", "0[]", nil, true},
		{"stray close", "0]", nil, true},
		{"unterminated quote", "0['a]", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Fatalf("ParsePath(%q) error = %v, want ErrInvalidPath", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

type address struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
}

type person struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Age     int
	Address *address `json:"address"`
	Tags    []string `json:"tags"`
	secret  string
}

type Audit struct {
	CreatedBy string `json:"createdBy"`
}

type Record struct {
	ID int `json:"id"`
	*Audit
}

type account struct {
	Record
	Owner string `json:"owner"`
	*Audit
}

func TestResolve(t *testing.T) {
	p := person{
		ID:      7,
		Name:    "Ada",
		Age:     36,
		Address: &address{Street: "1 Loop", City: "London"},
		Tags:    []string{"math", "engines"},
		secret:  "hidden",
	}
	args := []any{
		p,
		map[string]any{"items": []any{map[string]any{"name": "first"}, nil}},
		map[int]string{3: "three"},
		&p,
		(*address)(nil),
		account{Record: Record{ID: 9}, Owner: "ada"},
		struct{ Base *Record }{},
	}

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"json tag", "0.id", 7, true},
		{"go field name", "0.Age", 36, true},
		{"field name with tag", "0.Name", "Ada", true},
		{"pointer field", "0.address.city", "London", true},
		{"slice in struct", "0.tags[1]", "engines", true},
		{"nested map slice", "1.items[0].name", "first", true},
		{"nil element", "1.items[1]", nil, true},
		{"int keyed map", "2.3", "three", true},
		{"through pointer arg", "3.id", 7, true},
		{"nil pointer arg", "4", (*address)(nil), true},
		{"through nil pointer", "4.street", nil, false},
		{"unexported field", "0.secret", nil, false},
		{"missing key", "1.missing", nil, false},
		{"index out of range", "0.tags[5]", nil, false},
		{"arg out of range", "9", nil, false},
		{"non-numeric slice index", "0.tags.first", nil, false},
		{"negative index", "0.tags[-1]", nil, false},
		{"into scalar", "0.id.value", nil, false},
		{"promoted json tag", "5.id", 9, true},
		{"promoted go field name", "5.ID", 9, true},
		{"direct beside embedded", "5.owner", "ada", true},
		{"nil embedded pointer", "5.createdBy", nil, false},
		{"named pointer field is not promoted", "6.id", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Resolve(args, tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.path, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if tt.wantOK && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_MalformedPath(t *testing.T) {
	_, _, err := Resolve([]any{1}, "0..x")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("Resolve() error = %v, want *PathError", err)
	}
	if pathErr.Path != "0..x" {
		t.Errorf("PathError.Path = %q, want %q", pathErr.Path, "0..x")
	}
}
