// Package mocks provides generated mocks for the auth ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// Hand-written doubles for the wider ports live in internal/mocks/auth.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	codec := mocks.NewMockTokenCodec(ctrl)
//	codec.EXPECT().Verify(gomock.Any()).Return(claim, nil)
package mocks

// Generate mock for TokenCodec interface from internal/ports.
// This creates MockTokenCodec with Issue and Verify methods.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_codec_mock.go github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports TokenCodec

// Generate mock for HandoffStore interface from internal/ports.
// This creates MockHandoffStore with Create and Consume methods.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=handoff_store_mock.go github.com/IRIS-LABS/social-wallat-app-back-end/internal/ports HandoffStore
