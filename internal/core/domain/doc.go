// Package domain defines Hoard's domain rules and errors.
//
// It has no IO dependencies. This package contains:
//
//   - Limits: protocol-visible bounds on keys and values
//   - Key validation
//   - Errors: DomainError and the sentinel errors every layer maps onto
//
// Error codes follow the format HD-<AREA>-<NNNN>, where AREA is one of
// PROT (request shape), VALD (validation), CODC (value codec), STOR (store)
// or SYS.
package domain
