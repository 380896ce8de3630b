// Package userstore provides a SQLite backed users.Directory.
//
// Users created on first reference by the record reader are stored with a
// bcrypt hash of their initial password.
package userstore
