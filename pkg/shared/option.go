package shared

// Option is a label/value pair for select inputs.
type Option struct {
	Value string
	Label string
}
