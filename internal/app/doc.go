// Package app provides the application service layer.
//
// Orchestrates the poll use cases: create and list polls, submit and classify responses, build results.
// Sits between HTTP handlers and the storage ports. Depends on domain interfaces, not concrete implementations.
// Domain sentinels are translated into structured errors here so handlers only map types to status codes.
package app
