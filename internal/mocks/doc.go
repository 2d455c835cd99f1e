// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields for overriding behavior and falls back to
// a simple in-memory default, so tests only stub what they care about.
//
// Usage:
//
//	import "github.com/phrazzld/physref/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    users := mocks.NewMockUserStore()
//	    users.CreateFn = func(ctx context.Context, u *domain.User) error {
//	        return store.ErrUsernameExists
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
