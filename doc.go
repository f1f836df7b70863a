// Package goecc is the root of a library of elliptic-curve primitives over
// prime fields, split across fp (prime-field arithmetic), curve (affine and
// Jacobian group arithmetic, scalar multiplication), curves (a registry of
// named groups), ecdsa (X9.62/FIPS 186 signatures), and ecgost (GOST R
// 34.10 signatures). Hashing, randomness beyond crypto/rand, and signature
// or point encodings are left to callers.
package goecc
