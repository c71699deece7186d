package cache

import (
	"errors"
	"reflect"
	"testing"
)

type payload struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestDecode_AsIs(t *testing.T) {
	got, err := Decode[int](42)
	if err != nil || got != 42 {
		t.Errorf("Decode[int](42) = %v, %v", got, err)
	}

	p := &payload{ID: 1}
	gotPtr, err := Decode[*payload](p)
	if err != nil || gotPtr != p {
		t.Errorf("Decode[*payload] should return the same pointer, got %v, %v", gotPtr, err)
	}
}

func TestDecode_Nil(t *testing.T) {
	got, err := Decode[*payload](nil)
	if err != nil || got != nil {
		t.Errorf("Decode(nil) = %v, %v; want nil, nil", got, err)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	_, err := Decode[string](42)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Decode[string](42) error = %v, want ErrTypeMismatch", err)
	}
}

func TestDecode_Encoded(t *testing.T) {
	want := payload{ID: 7, Name: "Ada", Tags: []string{"a", "b"}}
	enc, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode[payload](enc)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %+v, want %+v", got, want)
	}

	raw, err := Decode[Encoded](enc)
	if err != nil || !reflect.DeepEqual(raw, enc) {
		t.Errorf("Decode[Encoded] should return the bytes unchanged")
	}

	generic, err := Decode[any](enc)
	if err != nil {
		t.Fatalf("Decode[any]() error = %v", err)
	}
	m, ok := generic.(map[string]any)
	if !ok || m["name"] != "Ada" {
		t.Errorf("Decode[any]() = %#v, want map with json field names", generic)
	}
}

func TestEncode_Unsupported(t *testing.T) {
	if _, err := Encode(make(chan int)); err == nil {
		t.Error("Encode(chan) should fail")
	}
}
