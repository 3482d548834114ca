// Package dom declares the document primitives the focus tracker consumes.
//
// The tracker never touches a concrete document. It reads and writes the live
// selection, inspects range boundary points, tests subtree containment and
// reads scroll offsets through the interfaces in this package. A browser
// binding, a headless document or the in-memory implementation in memdom
// can sit behind them.
//
// Node identity is interface equality: two Node values are the same node
// when they compare equal with ==. Implementations must therefore use
// pointer receivers.
package dom
