// Package auth persists the Astromeric bearer token and inspects JWT
// claims client-side. Tokens are verified only by the backend; inspection
// here is limited to displaying the subject and warning about expiry.
package auth
