// Code generated by hand for tests. DO NOT EDIT.

package generated

func generatedPanic() {
	panic("generated")
}
