// Package domain holds the resident identifier validator and the value types it
// produces.
//
// An identifier is 18 characters: a 6-digit region code, an 8-digit birth date
// (YYYYMMDD), a 3-digit sequence order and a check character that is a digit or
// X. The whole sequence must satisfy a weighted checksum where position i,
// counted from the end, carries the weight 2^i mod 11 and the weighted sum
// modulo 11 equals 1.
//
// Domain Purity: this package performs no I/O, takes no context.Context and never
// calls time.Now(). Callers pass the current time where a computation needs it.
package domain
