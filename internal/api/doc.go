// Package api handles incoming HTTP requests, form decoding and validation,
// and page rendering. It acts as an adapter between browsers and the
// internal application services, translating HTTP concerns to business
// operations.
package api
