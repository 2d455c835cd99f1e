// Package auth implements account registration, credential checks and the
// signed session and flash tokens the web layer keeps in cookies.
package auth
