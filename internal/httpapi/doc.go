// Package httpapi serves the JSON REST surface under /api that the browser
// frontend talks to, plus the static frontend itself. Every route calls the
// same ledger managers as the Connect services.
package httpapi
