// Package uniuri generates cryptographically secure random strings, used
// for the initial admin password.
package uniuri
