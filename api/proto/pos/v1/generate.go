// Package posv1 holds the generated pos.v1 protobuf messages and gRPC stubs.
package posv1

//go:generate protoc -I ../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative pos/v1/order.proto
