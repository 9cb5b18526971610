/*
Package app contains the pieces needed to assemble an application from
extensions: a router that dispatches transactions by message path, decorator
chains wrapping the router, and genesis initialization.
*/
package app
