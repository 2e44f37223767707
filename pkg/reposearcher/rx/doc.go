// Package rx provides the small stream toolkit the presentation logic is built on.
//
// There are three stream flavors:
//
//   - Subject: a hot multicast stream. Values reach only the observers that are
//     subscribed at the moment of emission; nothing is replayed.
//   - Behavior: a latest-value holder. It is seeded with a value, every emission
//     replaces the stored value, and new observers receive the stored value first.
//   - Single: a one-shot result. It delivers exactly one value or one error and
//     then terminates.
//
// Operators (Map, CombineLatest2, SwitchMap, Catch, Share, ...) build derived
// streams on top of these. Emission on a stream is serialized: values pushed by
// concurrent or re-entrant producers are delivered one at a time, in the order
// they were pushed, and subscribing never blocks the caller.
//
// # Basic Usage
//
//	reload := rx.NewSubject[struct{}]()
//	language := rx.NewBehavior("Swift")
//
//	requests := rx.CombineLatest2(reload, language, func(_ struct{}, lang string) string {
//	    return lang
//	})
//
//	sub := requests.Subscribe(rx.OnNext(func(lang string) {
//	    fmt.Println("fetch", lang)
//	}))
//	defer sub.Dispose()
//
//	reload.Next(struct{}{})  // fetch Swift
//	language.Next("Go")      // fetch Go
//
// # Threading
//
// Nothing in this package starts a goroutine. Producers that complete work on
// other goroutines (network clients, timers) should hand results back through
// ObserveOn with a single-consumer executor such as Queue, so that state owned by
// the presentation loop is only touched from that loop.
package rx
