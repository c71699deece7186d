package cache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/cachefn/cache"
)

func ExampleNewMemoryStore() {
	s := cache.NewMemoryStore(cache.DefaultPolicy())
	ctx := context.Background()

	_ = s.Set(ctx, "my-key", "hello", 5*time.Minute)

	value, ok, _ := s.Get(ctx, "my-key")
	if ok {
		fmt.Println("Value:", value)
	}

	_, ok, _ = s.Get(ctx, "missing")
	fmt.Println("Missing key found:", ok)
	// Output:
	// Value: hello
	// Missing key found: false
}

func ExampleDecode() {
	type user struct {
		Name string `json:"name"`
	}

	enc, _ := cache.Encode(user{Name: "Ada"})

	u, err := cache.Decode[user](enc)
	fmt.Println(u.Name, err)
	// Output:
	// Ada <nil>
}

func ExamplePolicy_EffectiveTTL() {
	p := cache.DefaultPolicy()

	fmt.Println(p.EffectiveTTL(0))
	fmt.Println(p.EffectiveTTL(10 * time.Minute))
	fmt.Println(p.EffectiveTTL(3 * time.Hour))
	// Output:
	// 5m0s
	// 10m0s
	// 1h0m0s
}
