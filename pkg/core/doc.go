// Package core provides the reactive primitives that drive stackui containers.
//
// # Publisher
//
// Publisher holds the last published value and an ordered list of
// subscribers. Update stores a value and calls every subscriber synchronously,
// in registration order. Subscribe replays the last value, if there is one,
// before registering:
//
//	names := core.NewPublisher[[]string]()
//	cancel := names.Subscribe(func(v []string) {
//	    fmt.Println(len(v))
//	})
//	names.Update([]string{"a", "b"}) // prints 2
//	cancel()
//
// # Live
//
// Live pairs a plain value with a private Publisher. Set and Update are the
// only mutation paths, so the value and the publisher never disagree:
//
//	padding := core.NewLive(view.EdgeInsetsAll(8))
//	box := stack.NewBoundBox(padding.Publisher(), content)
//	padding.Set(view.EdgeInsetsAll(16)) // box adjusts its edges
//
// # Threading
//
// Nothing in this package is safe for concurrent use. Publishers and Live
// values must only be touched from the UI goroutine; callers that produce
// values elsewhere must hand them over before publishing.
package core
