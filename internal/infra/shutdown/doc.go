// Package shutdown coordinates graceful process termination.
//
// Hooks registered with OnShutdown run in reverse order once SIGINT or
// SIGTERM arrives or the context given to Wait is done, whichever happens
// first. All hooks share one deadline.
package shutdown
