package memo

// Status reports how a call was served.
type Status string

const (
	// StatusHit means the value came from the store.
	StatusHit Status = "hit"
	// StatusMiss means the function was invoked and its result stored.
	StatusMiss Status = "miss"
)

// Result is the envelope returned by WrapResult and, unless ReturnRawValue
// is set, by Memoizer.Call. In bypass mode only Options and Value are set.
type Result[R any] struct {
	Options Options
	Status  Status
	Key     string
	Value   R
	Created bool // whether the store was written
}
