// Package padic implements arithmetic on p-adic numbers of finite precision.
//
// A [Context] fixes the prime p and the default working precision N. Every
// [Number] bound to a context is stored as unit * p^valuation, known modulo
// p^precision, where the unit is coprime to p. Precision is absolute: the
// significant digits of a number sit at the exponents valuation..precision-1.
//
// Numbers are printed in three forms (see [PrintMode]):
//
//	Terse    58922
//	Series   2 + 2*3^1 + 1*3^3 + 1*3^4 + 2*3^5 + 2*3^6 + 2*3^7 + 2*3^8 + 2*3^9
//	ValUnit  58922
//
// and any of these renderings can be decoded back with [Parse].
//
// Ring operations ([Number.Add], [Number.Sub], [Number.Mul], [Number.Div])
// return new numbers and never mutate their operands; the result precision
// never exceeds the precision of either operand. The analytic functions
// [Log] and [Exp] evaluate their power series with the context's extended
// precision as working room.
//
// A Context is immutable and may be shared by any number of goroutines. A
// Number is not safe for concurrent mutation, but distinct numbers sharing
// a context can be used concurrently.
package padic
