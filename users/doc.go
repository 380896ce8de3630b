// Package users resolves the audit usernames found in record documents
// to user identities.
//
// A Resolver looks names up in a Directory and inserts a data entry user
// with a default password the first time an unknown name is seen. Lookups
// are memoized in a Cache; callers create one Cache per parse so that two
// audit attributes naming the same user cost a single directory round
// trip, and no state leaks between parses.
package users
