package reposearcher

// Transformable is the contract every screen's presentation logic satisfies:
// it turns a bundle of input streams into a bundle of output streams.
//
// Transform wires the streams together and returns immediately. It keeps no
// state beyond what the implementation owns explicitly, such as a current
// selection holder, and it never touches a presentation surface.
type Transformable[I, O any] interface {
	Transform(input I) O
}
