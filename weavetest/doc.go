/*
Package weavetest provides mocks and helpers for testing handlers,
decorators and extensions without running a full application.
*/
package weavetest
