// Package assertion provides a fluent, extensible assertion
// library and the plugin helpers used to grow it.
//
// A Registry maps names to assertions. Chains are started with
// Expect and walk through properties and methods by name:
//
//	r := assertion.NewRegistry()
//	err := r.Expect(path).To().Be().A().Prop("symlink").
//		Call("pointingTo", target).Err()
//
// Plugins install assertions with AddMethod and AddProperty,
// which never replace an existing name, or compile whole sets of
// handlers with DefineMethod, DefineProperty and
// DefineAssertions. FlattenList and FormatList normalise and
// render the word lists assertion messages are built from.
package assertion
