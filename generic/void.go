package generic

// Void is a zero-size value, used where a type parameter needs "nothing".
type Void struct{}

func NewVoid() Void {
	return Void{}
}
